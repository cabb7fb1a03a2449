package traverse

import "github.com/lestrrat-go/dax/node"

// Backend receives the elements of a tree in document order. Containers
// get an Enter call before their children and an Exit call after them;
// every other kind gets a single Visit call. Traverser.CTM is the
// transform in effect for the element being visited, its own transform
// included.
type Backend interface {
	EnterSvg(*Traverser, *node.Element, *node.Svg)
	ExitSvg(*Traverser, *node.Element, *node.Svg)
	EnterGroup(*Traverser, *node.Element, *node.Group)
	ExitGroup(*Traverser, *node.Element, *node.Group)

	VisitPath(*Traverser, *node.Element, *node.Path)
	VisitRect(*Traverser, *node.Element, *node.Rect)
	VisitCircle(*Traverser, *node.Element, *node.Circle)
	VisitLine(*Traverser, *node.Element, *node.Line)
	VisitPolyline(*Traverser, *node.Element, *node.Polyline)
	VisitText(*Traverser, *node.Element, *node.TextData)
	VisitImage(*Traverser, *node.Element, *node.Image)
	VisitVideo(*Traverser, *node.Element, *node.Video)
	VisitAnimate(*Traverser, *node.Element, *node.Animate)
	VisitAnimateTransform(*Traverser, *node.Element, *node.AnimateTransform)
	VisitScript(*Traverser, *node.Element, *node.Script)
	VisitHandler(*Traverser, *node.Element, *node.Handler)
	VisitDesc(*Traverser, *node.Element, *node.Desc)
	VisitTitle(*Traverser, *node.Element, *node.Title)
}

// NopBackend does nothing. Embed it to implement only some of the
// Backend methods.
type NopBackend struct{}

var _ Backend = NopBackend{}

func (NopBackend) EnterSvg(*Traverser, *node.Element, *node.Svg)                           {}
func (NopBackend) ExitSvg(*Traverser, *node.Element, *node.Svg)                            {}
func (NopBackend) EnterGroup(*Traverser, *node.Element, *node.Group)                       {}
func (NopBackend) ExitGroup(*Traverser, *node.Element, *node.Group)                        {}
func (NopBackend) VisitPath(*Traverser, *node.Element, *node.Path)                         {}
func (NopBackend) VisitRect(*Traverser, *node.Element, *node.Rect)                         {}
func (NopBackend) VisitCircle(*Traverser, *node.Element, *node.Circle)                     {}
func (NopBackend) VisitLine(*Traverser, *node.Element, *node.Line)                         {}
func (NopBackend) VisitPolyline(*Traverser, *node.Element, *node.Polyline)                 {}
func (NopBackend) VisitText(*Traverser, *node.Element, *node.TextData)                     {}
func (NopBackend) VisitImage(*Traverser, *node.Element, *node.Image)                       {}
func (NopBackend) VisitVideo(*Traverser, *node.Element, *node.Video)                       {}
func (NopBackend) VisitAnimate(*Traverser, *node.Element, *node.Animate)                   {}
func (NopBackend) VisitScript(*Traverser, *node.Element, *node.Script)                     {}
func (NopBackend) VisitHandler(*Traverser, *node.Element, *node.Handler)                   {}
func (NopBackend) VisitDesc(*Traverser, *node.Element, *node.Desc)                         {}
func (NopBackend) VisitTitle(*Traverser, *node.Element, *node.Title)                       {}
func (NopBackend) VisitAnimateTransform(*Traverser, *node.Element, *node.AnimateTransform) {}
