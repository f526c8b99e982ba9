// Package registry maps observatory daemon and machine names onto network
// identities. Configuration files reference daemons and control machines by
// name only; the registry is the single place those names resolve.
package registry

import "net/netip"

// Daemon identifies a named observatory daemon endpoint.
type Daemon struct {
	Name string `json:"name"`
	Host string `json:"host"`
	Port int    `json:"port"`
}

// Machine identifies a named observatory machine and its address.
type Machine struct {
	Name string     `json:"name"`
	Addr netip.Addr `json:"addr"`
}

// Registry resolves configuration names onto daemon and machine identities.
type Registry struct {
	daemons  map[string]Daemon
	machines map[string]Machine
}

// New builds a registry from the supplied identity tables.
func New(daemons []Daemon, machines []Machine) *Registry {
	r := &Registry{
		daemons:  make(map[string]Daemon, len(daemons)),
		machines: make(map[string]Machine, len(machines)),
	}
	for _, d := range daemons {
		r.daemons[d.Name] = d
	}
	for _, m := range machines {
		r.machines[m.Name] = m
	}
	return r
}

// Default returns the registry of known observatory daemons and machines.
func Default() *Registry {
	return New(
		[]Daemon{
			{Name: "mount_daemon", Host: "lmount", Port: 9003},
			{Name: "dome_daemon", Host: "dome", Port: 9004},
			{Name: "ops_daemon", Host: "ops", Port: 9001},
		},
		[]Machine{
			{Name: "tcs", Addr: netip.MustParseAddr("10.2.6.10")},
			{Name: "ops", Addr: netip.MustParseAddr("10.2.6.11")},
			{Name: "lmount", Addr: netip.MustParseAddr("10.2.6.12")},
		},
	)
}

// Daemon looks up a daemon identity by name.
func (r *Registry) Daemon(name string) (Daemon, bool) {
	d, ok := r.daemons[name]
	return d, ok
}

// Machine looks up a machine identity by name.
func (r *Registry) Machine(name string) (Machine, bool) {
	m, ok := r.machines[name]
	return m, ok
}
