package container_test

import (
	"context"

	"github.com/km-arc/go-ioc/framework/container"
)

// ── fixtures ──────────────────────────────────────────────────────────────────

type Service struct{ name string }

func (s *Service) Value(a int) int { return a }

func StaticValue(a int) int { return a }

type InvokableClass struct{ name string }

func (i *InvokableClass) Invoke(a int) int { return a }

type ArgumentService struct{ args []int }

func NewArgumentService(a, b, c int) *ArgumentService {
	return &ArgumentService{args: []int{a, b, c}}
}

func (s *ArgumentService) Arguments() []int { return s.args }

type ContainerService struct{ c *container.Container }

func NewContainerService(c *container.Container) *ContainerService {
	return &ContainerService{c: c}
}

type Item struct{ value string }

func NewItem(value string) *Item { return &Item{value: value} }

// ItemContext builds an Item carrying Value.
type ItemContext struct{ Value string }

func (m ItemContext) Resolve(ctx context.Context, c *container.Container) (any, error) {
	return c.BuildWith(ctx, container.KeyOf[*Item](), container.Args("value", m.Value))
}

type ItemService struct{ item *Item }

func NewItemService(item *Item) *ItemService { return &ItemService{item: item} }

type InnerService struct{ name string }

type OuterService struct{ inner *InnerService }

func NewOuterService(inner *InnerService) *OuterService {
	return &OuterService{inner: inner}
}

// Node depends on its own class.
type Node struct{ next *Node }

func NewNode(next *Node) *Node { return &Node{next: next} }

type CycleA struct{ b *CycleB }
type CycleB struct{ a *CycleA }

func NewCycleA(b *CycleB) *CycleA { return &CycleA{b: b} }
func NewCycleB(a *CycleA) *CycleB { return &CycleB{a: a} }

type Greeter interface{ Greet() string }

type Base struct{ name string }

type Child struct{ base *Base }

func NewChild(base *Base) *Child { return &Child{base: base} }

type Unregistered struct{ name string }

func fixtureTypes() *container.Types {
	types := container.NewTypes()

	container.DefineNamed[*Service](types, "Service").
		Method("Value", (*Service).Value, container.Arg("a")).
		Static("StaticValue", StaticValue, container.Arg("a"))

	container.DefineNamed[*InvokableClass](types, "InvokableClass").
		Invokable((*InvokableClass).Invoke, container.Arg("a"))

	container.DefineNamed[*ArgumentService](types, "ArgumentService").
		Constructor(NewArgumentService,
			container.Arg("a").Default(1),
			container.Arg("b").Default(2),
			container.Arg("c").Default(3),
		)

	container.DefineNamed[*ContainerService](types, "ContainerService").
		Constructor(NewContainerService, container.Arg("container"))

	container.Define[*Item](types).
		Constructor(NewItem, container.Arg("value").Nullable())

	container.DefineNamed[*ItemService](types, "ItemService").
		Constructor(NewItemService, container.Arg("item").Marked(ItemContext{Value: "test"}))

	container.Define[*InnerService](types)
	container.Define[*OuterService](types).
		Constructor(NewOuterService, container.Arg("innerService"))

	container.Define[*Node](types).
		Constructor(NewNode, container.Arg("next"))

	container.Define[*CycleA](types).Constructor(NewCycleA, container.Arg("b"))
	container.Define[*CycleB](types).Constructor(NewCycleB, container.Arg("a"))

	container.Define[Greeter](types)

	container.Define[*Base](types)
	container.Define[*Child](types).
		Extends(container.KeyOf[*Base]()).
		Constructor(NewChild, container.Arg("base").As(container.ParentAlias))

	return types
}

func newContainer(opts ...container.Option) *container.Container {
	return container.New(append([]container.Option{container.WithTypes(fixtureTypes())}, opts...)...)
}

var (
	innerKey = container.KeyOf[*InnerService]()
	outerKey = container.KeyOf[*OuterService]()
)
