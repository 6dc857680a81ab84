package render

import (
	"fmt"
	"io"
	"sync"
	"text/tabwriter"

	"scan-viewer/internal/domain/entity"
	"scan-viewer/internal/domain/port"
)

// Table таблица групп областей. Идентификатор строки это цвет группы.
type Table struct {
	mu       sync.Mutex
	rows     []entity.ROIGroup
	selected string
}

func NewTable() *Table {
	return &Table{}
}

// Render заменяет строки таблицы
func (t *Table) Render(groups []entity.ROIGroup) {
	t.mu.Lock()
	t.rows = append([]entity.ROIGroup(nil), groups...)
	t.mu.Unlock()
}

// MarkSelected отмечает строку; предыдущая отметка снимается
func (t *Table) MarkSelected(id string) {
	t.mu.Lock()
	t.selected = id
	t.mu.Unlock()
}

func (t *Table) Rows() []entity.ROIGroup {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]entity.ROIGroup(nil), t.rows...)
}

func (t *Table) Selected() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.selected
}

// WriteTo печатает таблицу: цвет, подпись и диапазон срезов
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	rows, selected := t.Rows(), t.Selected()

	cw := &countingWriter{w: w}
	tw := tabwriter.NewWriter(cw, 0, 4, 2, ' ', 0)
	for _, g := range rows {
		mark := " "
		if g.Color == selected {
			mark = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s %d:%d\n", mark, g.Color, g.Label, g.MinSlice, g.MaxSlice)
	}
	err := tw.Flush()
	return cw.n, err
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// ColorInput поле выбора цвета
type ColorInput struct {
	mu    sync.Mutex
	value string
}

// NewColorInput создаёт поле с начальным цветом #rrggbb
func NewColorInput(value string) (*ColorInput, error) {
	in := &ColorInput{}
	if err := in.Set(value); err != nil {
		return nil, err
	}
	return in, nil
}

// Set меняет цвет; принимается только #rrggbb
func (in *ColorInput) Set(value string) error {
	if _, _, _, err := entity.ParseHexColor(value); err != nil {
		return err
	}
	in.mu.Lock()
	in.value = value
	in.mu.Unlock()
	return nil
}

func (in *ColorInput) Value() string {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.value
}

var (
	_ port.ROITable    = (*Table)(nil)
	_ port.ColorPicker = (*ColorInput)(nil)
)
