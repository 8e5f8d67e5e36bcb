package vehicle

type Type string

const (
	TypeBike      Type = "bike"
	TypeCar       Type = "car"
	TypeTraveller Type = "traveller"
)

var AllTypes = []Type{TypeBike, TypeCar, TypeTraveller}

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case TypeBike, TypeCar, TypeTraveller:
		return true
	default:
		return false
	}
}

// Label is the display name shown next to counts on the home page.
func (t Type) Label() string {
	switch t {
	case TypeBike:
		return "Bike"
	case TypeCar:
		return "Car"
	case TypeTraveller:
		return "Traveller"
	default:
		return string(t)
	}
}

func NewType(s string) (Type, error) {
	t := Type(s)
	if !t.IsValid() {
		return "", ErrInvalidType
	}
	return t, nil
}
