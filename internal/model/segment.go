package model

// Segment один сектор колеса
type Segment struct {
	Label         string
	Image         string
	Chance        float64  // Вероятность выпадения, [0,1]
	DisplayWeight *float64 // Необязательный визуальный размер сектора, на выбор не влияет
}

// SameAs сравнивает сегменты по метке, картинке и вероятности
func (s Segment) SameAs(other Segment) bool {
	return s.Label == other.Label && s.Image == other.Image && s.Chance == other.Chance
}
