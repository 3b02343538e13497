package vehicle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBase_Describe(t *testing.T) {
	b := NewBase("Piaggio", "Ape", 3)
	assert.Equal(t, "Piaggio Ape with 3 wheels", b.Describe())
	assert.Equal(t, 3, b.Wheels())
}

func TestCar_DescribeExtendsBase(t *testing.T) {
	c := NewCar("Volvo", "240", 5)
	assert.Equal(t, "Volvo 240 with 4 wheels and 5 doors", c.Describe())
	assert.Equal(t, 4, c.Wheels(), "wheel count comes from the embedded base")
}

func TestCar_SatisfiesVehicle(t *testing.T) {
	var v Vehicle = NewCar("Fiat", "Panda", 3)
	assert.Contains(t, v.Describe(), "Fiat Panda")

	vehicles := []Vehicle{
		NewBase("Piaggio", "Ape", 3),
		NewCar("Fiat", "Panda", 3),
	}
	descriptions := make([]string, 0, len(vehicles))
	for _, v := range vehicles {
		descriptions = append(descriptions, v.Describe())
	}
	assert.Len(t, descriptions, 2)
	assert.NotEqual(t, descriptions[0], descriptions[1])
}
