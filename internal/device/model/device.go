package model

import "fmt"

// Headers is the request header mapping sent along with a device call.
type Headers map[string]string

// Version identifies a firmware generation.
type Version int

const (
	VersionV1 Version = 1
	VersionV2 Version = 2
)

func (v Version) String() string {
	return fmt.Sprintf("v%d", int(v))
}

const (
	InterfaceEth0 = "eth0"
	InterfaceMgmt = "mgmt"
)

// InterfaceNames is the fixed set every device exposes, in reporting order.
var InterfaceNames = []string{InterfaceEth0, InterfaceMgmt}

// Traffic counters are sampled in [TrafficMin, TrafficMax].
const (
	TrafficMin = 1_000
	TrafficMax = 1_000_000
)
