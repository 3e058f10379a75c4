// Licensed under the Apache License, Version 2.0; see LICENSE.

package ordsym

import "github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/idn"

// SpaceID identifies a location counter within a section. Subtracting two
// relocatable Values built from the same SpaceID yields an absolute.
type SpaceID int32

// SectionKind is the kind of a control section (spec.md §3.4).
type SectionKind int

const (
	SectionExecutable SectionKind = iota
	SectionReadOnlyExecutable
	SectionDummy
	SectionCommon
)

// section is a control section (CSECT/DSECT/RSECT/COM) owning one or
// more location counters.
type section struct {
	name  idn.ID
	kind  SectionKind
	loctr map[idn.ID]SpaceID // named location counters within this section
}

// loctr is one location counter: a cursor within a section, plus the
// high-water mark needed to implement "ORG ," (spec.md §9).
type loctr struct {
	id        SpaceID
	section   idn.ID
	name      idn.ID
	offset    int64
	highWater int64
}

// Spaces owns the sections/location-counter model shared by one Table.
type Spaces struct {
	sections map[idn.ID]*section
	spaces   []*loctr // indexed by SpaceID

	activeSection idn.ID
	activeSpace   SpaceID
}

// NewSpaces returns an empty Spaces model with no active section; callers
// must StartSection before emitting any location-counter-relative value.
func NewSpaces() *Spaces {
	return &Spaces{sections: make(map[idn.ID]*section)}
}

// StartSection switches to (creating if necessary) the named section of
// the given kind and activates its default (unnamed) location counter,
// preserving that location counter's offset if the section already
// existed.
func (s *Spaces) StartSection(name idn.ID, kind SectionKind) {
	sec, ok := s.sections[name]
	if !ok {
		sec = &section{name: name, kind: kind, loctr: make(map[idn.ID]SpaceID)}
		s.sections[name] = sec
		id := s.newSpace(name, idn.EmptyID)
		sec.loctr[idn.EmptyID] = id
	}
	s.activeSection = name
	s.activeSpace = sec.loctr[idn.EmptyID]
}

func (s *Spaces) newSpace(section, name idn.ID) SpaceID {
	id := SpaceID(len(s.spaces))
	s.spaces = append(s.spaces, &loctr{id: id, section: section, name: name})
	return id
}

// Loctr switches the active location counter within the active section
// to name (creating it, starting at offset 0, if it does not yet exist),
// preserving offsets across switches, per spec.md §3.4/§4.4.
func (s *Spaces) Loctr(name idn.ID) {
	sec := s.sections[s.activeSection]
	if sec == nil {
		return
	}
	id, ok := sec.loctr[name]
	if !ok {
		id = s.newSpace(s.activeSection, name)
		sec.loctr[name] = id
	}
	s.activeSpace = id
}

// ActiveSpace returns the currently active location counter's handle.
func (s *Spaces) ActiveSpace() SpaceID { return s.activeSpace }

// ActiveSection returns the name of the currently active section, or
// idn.EmptyID before any section has been started (&SYSECT, spec.md
// §3.2/§3.4).
func (s *Spaces) ActiveSection() idn.ID { return s.activeSection }

// ActiveSectionKind returns the currently active section's kind, or
// false before any section has been started (&SYSSTYP, spec.md §3.2).
func (s *Spaces) ActiveSectionKind() (SectionKind, bool) {
	sec, ok := s.sections[s.activeSection]
	if !ok {
		return 0, false
	}
	return sec.kind, true
}

// ActiveLoctrName returns the currently active location counter's name
// within its section (empty for a section's default, unnamed location
// counter), or idn.EmptyID before any section has been started
// (&SYSLOC, spec.md §3.2/§3.4).
func (s *Spaces) ActiveLoctrName() idn.ID {
	if int(s.activeSpace) < 0 || int(s.activeSpace) >= len(s.spaces) {
		return idn.EmptyID
	}
	return s.spaces[s.activeSpace].name
}

// sectionOf returns the section name owning space id.
func (s *Spaces) sectionOf(id SpaceID) idn.ID {
	if int(id) < 0 || int(id) >= len(s.spaces) {
		return idn.EmptyID
	}
	return s.spaces[id].section
}

// Current returns the active location counter's current offset as a
// relocatable Value: the meaning of "*" in spec.md §3.4/§4.4.
func (s *Spaces) Current() Value {
	return Reloc(s.activeSpace, s.offset(s.activeSpace))
}

func (s *Spaces) offset(id SpaceID) int64 {
	if int(id) < 0 || int(id) >= len(s.spaces) {
		return 0
	}
	return s.spaces[id].offset
}

// Advance moves the active location counter forward by n bytes, tracking
// the high-water mark for a future "ORG ,".
func (s *Spaces) Advance(n int64) {
	l := s.spaces[s.activeSpace]
	l.offset += n
	if l.offset > l.highWater {
		l.highWater = l.offset
	}
}

// Org rebinds the active location counter's offset to value (spec.md's
// "ORG expr[,boundary[,offset]]"); alignment/displacement are applied by
// the caller before calling Org since they require operand-specific
// rounding the core does not itself define. Org does not reduce the
// space's high-water mark.
func (s *Spaces) Org(value int64) {
	l := s.spaces[s.activeSpace]
	l.offset = value
	if value > l.highWater {
		l.highWater = value
	}
}

// OrgHighWater rewinds the active location counter to the maximum offset
// it has ever reached: "ORG ," in spec.md §4.4/§9.
func (s *Spaces) OrgHighWater() {
	l := s.spaces[s.activeSpace]
	l.offset = l.highWater
}
