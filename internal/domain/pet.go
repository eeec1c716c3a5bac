package domain

// WeightRange is the size class of a pet
type WeightRange string

const (
	WeightSmall  WeightRange = "small"
	WeightMedium WeightRange = "medium"
	WeightLarge  WeightRange = "large"
	WeightXLarge WeightRange = "xlarge"
)

// IsValid returns true for known weight ranges
func (w WeightRange) IsValid() bool {
	switch w {
	case WeightSmall, WeightMedium, WeightLarge, WeightXLarge:
		return true
	}
	return false
}

// CoatType is the coat kind of a pet
type CoatType string

const (
	CoatShort  CoatType = "short"
	CoatLong   CoatType = "long"
	CoatDouble CoatType = "double"
	CoatCurly  CoatType = "curly"
	CoatWire   CoatType = "wire"
)

// IsValid returns true for known coat types
func (c CoatType) IsValid() bool {
	switch c {
	case CoatShort, CoatLong, CoatDouble, CoatCurly, CoatWire:
		return true
	}
	return false
}

// Pet holds the attributes that drive modifier resolution
type Pet struct {
	ID          int64
	ClientID    int64
	Name        string
	Species     string
	WeightRange WeightRange // empty = unknown, matches no weight condition
	CoatType    CoatType    // empty = unknown, matches no coat condition
}
