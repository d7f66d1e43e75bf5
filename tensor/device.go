package tensor

// Device names the compute context a component targets. Only the host CPU
// backend exists; the type is threaded through constructors explicitly so
// placement never lives in hidden global state.
type Device string

const CPU Device = "cpu"

func (d Device) String() string {
	return string(d)
}
