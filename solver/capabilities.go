package solver

import "log/slog"

// DefaultMaxHardwareVariables is the size ceiling for hardware submissions
// when the capabilities do not set one.
const DefaultMaxHardwareVariables = 5000

// Capabilities describes which backends a solver may use. It is an explicit
// value handed to the Hybrid constructor; there is no ambient global flag.
type Capabilities struct {
	// Hardware selects the hardware-assisted backend.
	Hardware bool

	// Endpoint is the base URL of the quantum-annealing service.
	Endpoint string

	// Token is the access credential for the service.
	Token string

	// MaxHardwareVariables is the largest problem, in variables, the
	// hardware backend accepts. Zero means DefaultMaxHardwareVariables.
	MaxHardwareVariables int
}

// HardwareEnabled reports whether every hardware precondition holds: the
// backend is selected, an endpoint is configured, and a credential is set.
func (c Capabilities) HardwareEnabled() bool {
	return c.Hardware && c.Endpoint != "" && c.Token != ""
}

// Normalize degrades the capabilities to classical-only when a hardware
// precondition is missing and fills defaulted fields. The degradation is a
// capability check, not an error; it is logged and construction proceeds.
func (c Capabilities) Normalize(logger *slog.Logger) Capabilities {
	if c.MaxHardwareVariables <= 0 {
		c.MaxHardwareVariables = DefaultMaxHardwareVariables
	}
	if !c.Hardware {
		return c
	}
	if !c.HardwareEnabled() {
		reason := "missing endpoint"
		if c.Endpoint != "" {
			reason = "missing access token"
		}
		if logger != nil {
			logger.Info("hardware backend disabled", "reason", reason)
		}
		c.Hardware = false
	}
	return c
}
