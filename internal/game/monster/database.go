package monster

// Database is an ordered collection of monsters with linear lookup.
// Duplicate IDs are permitted; lookups return the first match.
type Database struct {
	monsters []Monster
}

// NewDatabase returns an empty Database.
func NewDatabase() *Database {
	return &Database{}
}

// Add appends m. No duplicate check is performed.
//
// Postcondition: Len() grows by one and m is the last entry.
func (d *Database) Add(m Monster) {
	d.monsters = append(d.monsters, m)
}

// Merge appends every monster in ms, in order.
func (d *Database) Merge(ms []Monster) {
	d.monsters = append(d.monsters, ms...)
}

// FindByID returns the first monster whose ID equals id.
//
// Postcondition: ok is false iff no entry has that ID.
func (d *Database) FindByID(id string) (Monster, bool) {
	for _, m := range d.monsters {
		if m.ID == id {
			return m, true
		}
	}
	return Monster{}, false
}

// FindByName returns the first monster whose display name equals name.
//
// Postcondition: ok is false iff no entry has that name.
func (d *Database) FindByName(name string) (Monster, bool) {
	for _, m := range d.monsters {
		if m.Name == name {
			return m, true
		}
	}
	return Monster{}, false
}

// All returns a copy of every monster in insertion order.
func (d *Database) All() []Monster {
	out := make([]Monster, len(d.monsters))
	copy(out, d.monsters)
	return out
}

// Len returns the number of monsters.
func (d *Database) Len() int {
	return len(d.monsters)
}

// Clone returns an independent copy of d.
func (d *Database) Clone() *Database {
	return &Database{monsters: d.All()}
}
