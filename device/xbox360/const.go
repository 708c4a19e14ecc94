package xbox360

import (
	"fmt"
	"strings"
)

// Button bitmasks as used by XInput.
const (
	ButtonDPadUp    = 0x0001
	ButtonDPadDown  = 0x0002
	ButtonDPadLeft  = 0x0004
	ButtonDPadRight = 0x0008
	ButtonStart     = 0x0010
	ButtonBack      = 0x0020
	ButtonLThumb    = 0x0040
	ButtonRThumb    = 0x0080
	ButtonLShoulder = 0x0100
	ButtonRShoulder = 0x0200
	ButtonGuide     = 0x0400
	ButtonA         = 0x1000
	ButtonB         = 0x2000
	ButtonX         = 0x4000
	ButtonY         = 0x8000
)

// Control is a pad input a virtual button can drive: either a button bit or
// a trigger held at full travel.
type Control struct {
	Mask    uint32
	Trigger Trigger
}

type Trigger uint8

const (
	NoTrigger Trigger = iota
	LeftTrigger
	RightTrigger
)

var controls = map[string]Control{
	"a":          {Mask: ButtonA},
	"b":          {Mask: ButtonB},
	"x":          {Mask: ButtonX},
	"y":          {Mask: ButtonY},
	"start":      {Mask: ButtonStart},
	"back":       {Mask: ButtonBack},
	"select":     {Mask: ButtonBack},
	"guide":      {Mask: ButtonGuide},
	"home":       {Mask: ButtonGuide},
	"lb":         {Mask: ButtonLShoulder},
	"l":          {Mask: ButtonLShoulder},
	"rb":         {Mask: ButtonRShoulder},
	"r":          {Mask: ButtonRShoulder},
	"l3":         {Mask: ButtonLThumb},
	"r3":         {Mask: ButtonRThumb},
	"dpad-up":    {Mask: ButtonDPadUp},
	"dpad-down":  {Mask: ButtonDPadDown},
	"dpad-left":  {Mask: ButtonDPadLeft},
	"dpad-right": {Mask: ButtonDPadRight},
	"lt":         {Trigger: LeftTrigger},
	"zl":         {Trigger: LeftTrigger},
	"rt":         {Trigger: RightTrigger},
	"zr":         {Trigger: RightTrigger},
}

// LookupControl resolves a layout input name such as "a" or "dpad-up".
func LookupControl(name string) (Control, error) {
	c, ok := controls[strings.ToLower(name)]
	if !ok {
		return Control{}, fmt.Errorf("unknown xbox360 input %q", name)
	}
	return c, nil
}
