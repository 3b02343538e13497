// Package vehicle models a small two-level type hierarchy via
// interface satisfaction and struct embedding.
package vehicle

import (
	"fmt"
)

// Vehicle is anything that can describe itself and move.
type Vehicle interface {
	Describe() string
	Wheels() int
}

// Base carries the attributes every vehicle shares. Concrete
// vehicles embed it and specialize Describe.
type Base struct {
	Make   string
	Model  string
	wheels int
}

func NewBase(maker, model string, wheels int) Base {
	return Base{
		Make:   maker,
		Model:  model,
		wheels: wheels,
	}
}

func (b Base) Describe() string {
	return fmt.Sprintf("%s %s with %d wheels", b.Make, b.Model, b.wheels)
}

func (b Base) Wheels() int {
	return b.wheels
}

var (
	_ Vehicle = (*Base)(nil)
	_ Vehicle = (*Car)(nil)
)

// Car specializes Base with a door count and extends the base
// description instead of replacing it.
type Car struct {
	Base
	Doors int
}

func NewCar(maker, model string, doors int) Car {
	return Car{
		Base:  NewBase(maker, model, 4),
		Doors: doors,
	}
}

func (c Car) Describe() string {
	return fmt.Sprintf("%s and %d doors", c.Base.Describe(), c.Doors)
}
