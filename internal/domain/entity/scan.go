package entity

// ScanMetadata описывает геометрию объёма и данные пациента
type ScanMetadata struct {
	UID             string `json:"uid" yaml:"uid"`
	Name            string `json:"name" yaml:"name"`                       // имя пациента
	AccessionNumber string `json:"accessionNumber" yaml:"accessionNumber"` // номер исследования
	Width           int    `json:"width" yaml:"width"`                     // колонок в срезе
	Height          int    `json:"height" yaml:"height"`                   // строк в срезе
	Slices          int    `json:"slices" yaml:"slices"`                   // количество срезов
}

// SliceSize возвращает количество отсчётов в одном срезе
func (m ScanMetadata) SliceSize() int {
	return m.Width * m.Height
}

// VolumeBytes возвращает ожидаемый размер объёма в байтах
func (m ScanMetadata) VolumeBytes() int {
	return m.SliceSize() * m.Slices * 2
}

// ImageIDs возвращает идентификаторы всех срезов скана по порядку
func (m ScanMetadata) ImageIDs() []string {
	ids := make([]string, m.Slices)
	for i := range ids {
		ids[i] = ImageID{Scheme: DefaultScheme, ScanID: m.UID, Slice: i}.String()
	}
	return ids
}

// WorklistItem строка списка исследований
type WorklistItem struct {
	AccessionNumber string `json:"accessionNumber"`
	PatientName     string `json:"patientName"`
	UID             string `json:"uid"`
}

// Stack состояние стопки срезов на экране
type Stack struct {
	ImageIDs            []string
	CurrentImageIDIndex int
}

// NewStack создаёт стопку для всех срезов скана
func NewStack(meta ScanMetadata) *Stack {
	return &Stack{ImageIDs: meta.ImageIDs()}
}

// Current возвращает идентификатор текущего среза
func (s *Stack) Current() string {
	if s.CurrentImageIDIndex < 0 || s.CurrentImageIDIndex >= len(s.ImageIDs) {
		return ""
	}
	return s.ImageIDs[s.CurrentImageIDIndex]
}
