package monster

import "sync"

// referenceMonsters is the seed table. Display names are kept exactly as the
// game shows them so name lookups match in-game text.
var referenceMonsters = []Monster{
	mustNew("appleboss", "りんごボス", 30, 1000, 1500, 7200, 0, 0.48, 120).WithImage("https://example.com/lizpos.png"),
	mustNew("abysshell", "アビスヘル", 35, 1200, 1500, 8100, 0, 0.75, 120).WithImage("https://example.com/abysshell.png"),
	mustNew("abyssamas", "アビスコアマス", 35, 1200, 1500, 8700, 0, 0.75, 120).WithImage("https://example.com/abyssamas.png"),
	mustNew("eclipse1", "エクリプス（ロカゴス/エートス/チェリア)", 40, 1500, 1500, 39720, 9285, 0.51, 125).WithImage("https://example.com/eclipsexi.png"),
	mustNew("eclipse2", "エクリプス（ライコス/マティア/ティロロス）", 40, 1500, 1500, 41220, 9285, 0.51, 125).WithImage("https://example.com/eclipsex3.png"),
	mustNew("eclipse3", "エクリプス（アフェティリア）", 40, 1500, 1500, 41220, 9285, 0.51, 125).WithImage("https://example.com/eclipsex3.png"),
	mustNew("siokanboss", "シオカンボス", 40, 1500, 1500, 33720, 9285, 0.51, 125).WithImage("https://example.com/diaocanpos.png"),
	mustNew("odein", "オーディン", 30, 1000, 1500, 51720, 9285, 0.51, 120).WithImage("https://example.com/oasis.png"),
	mustNew("kimaira", "キマイラ", 30, 1000, 900, 2985, 0, 0.993, 120).WithImage("https://example.com/kimaira.png"),
}

var reference = sync.OnceValue(func() *Database {
	db := NewDatabase()
	db.Merge(referenceMonsters)
	return db
})

// Reference returns a database seeded with the reference monster table.
// Each call returns an independent copy; the shared table is never mutated.
//
// Postcondition: Len() == len(ReferenceMonsters()).
func Reference() *Database {
	return reference().Clone()
}

// ReferenceMonsters returns a copy of the reference table in display order.
func ReferenceMonsters() []Monster {
	return reference().All()
}

// mustNew builds a Monster and panics on invalid data. Used for package-level seed values.
func mustNew(id, name string, level, hp, defense, fixedDefense, fixedReduction uint32, cutRate float64, elementResistance uint32) Monster {
	m, err := New(id, name, level, hp, defense, fixedDefense, fixedReduction, cutRate, elementResistance)
	if err != nil {
		panic("monster: mustNew failed for " + id + ": " + err.Error())
	}
	return m
}
