// Package energy converts the cycle and command counters of a power analysis
// into energy and average power, based on the IDD currents of each supply
// rail.
package energy

// Energy is the energy of one rank split by component, in pJ.
type Energy struct {
	Activate    float64
	Precharge   float64
	Read        float64
	Write       float64
	Refresh     float64
	BankRefresh float64

	ActiveBackground    float64
	PrechargeBackground float64
	ActivePowerDown     float64
	PrechargePowerDown  float64
	SelfRefresh         float64
	PowerUp             float64
	SelfRefreshPowerUp  float64
	DeepSleep           float64
}

// Command returns the energy consumed by command-triggered operations.
func (e Energy) Command() float64 {
	return e.Activate + e.Precharge + e.Read + e.Write +
		e.Refresh + e.BankRefresh
}

// Background returns the energy consumed by standby and low-power states.
func (e Energy) Background() float64 {
	return e.ActiveBackground + e.PrechargeBackground +
		e.ActivePowerDown + e.PrechargePowerDown +
		e.SelfRefresh + e.PowerUp + e.SelfRefreshPowerUp + e.DeepSleep
}

// Total returns the sum of all components.
func (e Energy) Total() float64 {
	return e.Command() + e.Background()
}

// Add returns the component-wise sum.
func (e Energy) Add(o Energy) Energy {
	e.Activate += o.Activate
	e.Precharge += o.Precharge
	e.Read += o.Read
	e.Write += o.Write
	e.Refresh += o.Refresh
	e.BankRefresh += o.BankRefresh
	e.ActiveBackground += o.ActiveBackground
	e.PrechargeBackground += o.PrechargeBackground
	e.ActivePowerDown += o.ActivePowerDown
	e.PrechargePowerDown += o.PrechargePowerDown
	e.SelfRefresh += o.SelfRefresh
	e.PowerUp += o.PowerUp
	e.SelfRefreshPowerUp += o.SelfRefreshPowerUp
	e.DeepSleep += o.DeepSleep

	return e
}

// Result is the energy of a snapshot.
type Result struct {
	Ranks []Energy
	Total Energy

	// Cycles is the length of the evaluated window.
	Cycles int64

	// AveragePower is in mW.
	AveragePower float64
}
