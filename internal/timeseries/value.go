package timeseries

// Value is a nullable numeric table cell.
// 결측치는 센티널 숫자가 아니라 Valid=false로 표현
type Value struct {
	Float float64
	Valid bool
}

// Num returns a valid Value
func Num(f float64) Value {
	return Value{Float: f, Valid: true}
}

// Missing returns an invalid Value
func Missing() Value {
	return Value{}
}
