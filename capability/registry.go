// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package capability

// Set holds one flag per capability. A Set is filled once while an instance
// is being created and only read afterwards; reads need no locking as long
// as creation happens-before them.
type Set struct {
	flags    [N]bool
	backends BackendSet
}

// Defaults returns the initial set for an instance on platform p with the
// given compiled-in backends. The native backend of p starts enabled when it
// is compiled in, and the generic surface flag follows from it.
func Defaults(p Platform, backends BackendSet) Set {
	s := Set{backends: backends}
	if native := p.Native(); backends.Has(native) {
		s.flags[native] = true
	}
	s.derive()
	return s
}

// Register enables every capability whose extension name appears in names.
// Names are matched exactly. Unknown names, names of backends that are not
// compiled in and device extension names are returned in ignored and
// otherwise have no effect. Registering a name twice is the same as once.
func (s *Set) Register(names []string) (ignored []string) {
	for _, name := range names {
		c, ok := Lookup(name)
		switch {
		case !ok, c == Swapchain:
			ignored = append(ignored, name)
		case c == Surface:
			s.flags[Surface] = true
		case s.backends.Has(c):
			s.flags[c] = true
		default:
			ignored = append(ignored, name)
		}
	}
	s.derive()
	return ignored
}

// derive sets the generic surface flag when any backend flag is set.
// It never clears it, so an explicit request survives.
func (s *Set) derive() {
	for c := Win32Surface; c <= XlibSurface; c++ {
		if s.flags[c] {
			s.flags[Surface] = true
			return
		}
	}
}

// Enabled reports whether c was negotiated.
func (s *Set) Enabled(c Capability) bool {
	return c < N && s.flags[c]
}

// Backends returns the compiled-in backend set this Set was built for.
func (s *Set) Backends() BackendSet {
	return s.backends
}

// EnabledList returns the enabled capabilities in table order.
func (s *Set) EnabledList() []Capability {
	var cs []Capability
	for c := Capability(0); c < N; c++ {
		if s.flags[c] {
			cs = append(cs, c)
		}
	}
	return cs
}

// Advertised returns the instance extensions contributed for backends:
// the generic surface extension followed by each compiled-in backend.
func Advertised(backends BackendSet) []Extension {
	exts := []Extension{extensions[Surface]}
	for _, c := range backends.List() {
		exts = append(exts, extensions[c])
	}
	return exts
}
