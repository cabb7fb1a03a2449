package node

// Kind is the closed set of element kinds in the vocabulary.
type Kind int

const (
	KindUnknown Kind = iota
	KindSvg
	KindGroup
	KindPath
	KindRect
	KindCircle
	KindLine
	KindPolyline
	KindText
	KindImage
	KindVideo
	KindAnimate
	KindAnimateTransform
	KindScript
	KindHandler
	KindDesc
	KindTitle
)

var kindNames = [...]string{
	KindUnknown:          "unknown",
	KindSvg:              "svg",
	KindGroup:            "g",
	KindPath:             "path",
	KindRect:             "rect",
	KindCircle:           "circle",
	KindLine:             "line",
	KindPolyline:         "polyline",
	KindText:             "text",
	KindImage:            "image",
	KindVideo:            "video",
	KindAnimate:          "animate",
	KindAnimateTransform: "animateTransform",
	KindScript:           "script",
	KindHandler:          "handler",
	KindDesc:             "desc",
	KindTitle:            "title",
}

var kindsByName = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for i, name := range kindNames {
		if Kind(i) != KindUnknown {
			m[name] = Kind(i)
		}
	}
	return m
}()

func lookupKind(name string) Kind {
	return kindsByName[name]
}

// String returns the element name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return kindNames[KindUnknown]
	}
	return kindNames[k]
}

// IsContainer reports whether elements of this kind group other
// renderable elements.
func (k Kind) IsContainer() bool {
	return k == KindSvg || k == KindGroup
}

// newData returns the zero data variant for a kind.
func newData(k Kind, name string) Data {
	switch k {
	case KindSvg:
		return &Svg{Width: Length{Value: 100, Unit: UnitPercent}, Height: Length{Value: 100, Unit: UnitPercent}}
	case KindGroup:
		return &Group{}
	case KindPath:
		return &Path{Shape: defaultShape()}
	case KindRect:
		return &Rect{Shape: defaultShape()}
	case KindCircle:
		return &Circle{Shape: defaultShape()}
	case KindLine:
		return &Line{Shape: defaultShape()}
	case KindPolyline:
		return &Polyline{Shape: defaultShape()}
	case KindText:
		return &TextData{FontSize: 16, Fill: Paint{Kind: PaintColor, Color: black}}
	case KindImage:
		return &Image{}
	case KindVideo:
		return &Video{AudioLevel: 1}
	case KindAnimate:
		return &Animate{}
	case KindAnimateTransform:
		return &AnimateTransform{}
	case KindScript:
		return &Script{}
	case KindHandler:
		return &Handler{}
	case KindDesc:
		return &Desc{}
	case KindTitle:
		return &Title{}
	}
	return &Unknown{Name: name}
}
