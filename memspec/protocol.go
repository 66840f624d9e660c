package memspec

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Protocol defines the category of the memory.
type Protocol int

// A list of all supported DRAM protocols.
const (
	DDR3 Protocol = iota
	DDR4
	LPDDR4
	WideIO
)

var protocolNames = []string{"DDR3", "DDR4", "LPDDR4", "WIDEIO"}

func (p Protocol) String() string {
	if p < 0 || int(p) >= len(protocolNames) {
		return fmt.Sprintf("Protocol(%d)", int(p))
	}

	return protocolNames[p]
}

// HasDLL returns true for protocols whose slow power-down exit relocks a DLL.
func (p Protocol) HasDLL() bool {
	return p == DDR3 || p == DDR4
}

// ParseProtocol converts a protocol name, case-insensitive, into a Protocol.
func ParseProtocol(name string) (Protocol, error) {
	n := strings.ToUpper(strings.TrimSpace(name))
	for i, pn := range protocolNames {
		if pn == n {
			return Protocol(i), nil
		}
	}

	return 0, fmt.Errorf("unknown memory protocol %q", name)
}

// MarshalJSON writes the protocol by name.
func (p Protocol) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON reads the protocol by name.
func (p *Protocol) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}

	parsed, err := ParseProtocol(name)
	if err != nil {
		return err
	}

	*p = parsed

	return nil
}
