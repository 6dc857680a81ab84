package api

import (
	"github.com/santhosh-tekuri/jsonschema/v5"
)

const addROISchema = `{
	"type": "object",
	"required": ["scan_id", "x", "y", "w", "h", "color", "image_index"],
	"properties": {
		"scan_id": {"type": "string", "minLength": 1},
		"x": {"type": "number"},
		"y": {"type": "number"},
		"w": {"type": "number"},
		"h": {"type": "number"},
		"color": {"type": "string", "pattern": "^#[0-9a-fA-F]{6}$"},
		"image_index": {"type": "integer", "minimum": 0}
	}
}`

const deleteROISchema = `{
	"type": "object",
	"required": ["scan_id", "id"],
	"properties": {
		"scan_id": {"type": "string", "minLength": 1},
		"id": {"type": "string", "minLength": 1}
	}
}`

const saveSchema = `{
	"type": "object",
	"required": ["scan_id"],
	"properties": {
		"scan_id": {"type": "string", "minLength": 1}
	}
}`

type schemas struct {
	addROI    *jsonschema.Schema
	deleteROI *jsonschema.Schema
	save      *jsonschema.Schema
}

func compileSchemas() (*schemas, error) {
	var s schemas
	var err error
	if s.addROI, err = jsonschema.CompileString("add-roi.json", addROISchema); err != nil {
		return nil, err
	}
	if s.deleteROI, err = jsonschema.CompileString("delete-roi.json", deleteROISchema); err != nil {
		return nil, err
	}
	if s.save, err = jsonschema.CompileString("save.json", saveSchema); err != nil {
		return nil, err
	}
	return &s, nil
}
