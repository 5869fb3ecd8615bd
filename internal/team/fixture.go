package team

// Demo returns the built-in four-member demo team. cmd/stressreport falls
// back to it when no team file is supplied, and tests use it as a known
// numeric fixture.
func Demo() *Team {
	members := []Member{
		{Name: "Sora", Integration: 12, Capacity: 8, Resistance: 0.2},
		{Name: "Kai", Integration: 10, Capacity: 6, Resistance: 0.8},
		{Name: "Yuki", Integration: 5, Capacity: 4, Resistance: 1.5},
		{Name: "Hana", Integration: 8, Capacity: 9, Resistance: 0.3},
	}
	compat := NewSymMatrix(len(members), 0.5)
	compat.Set(0, 1, 0.8)
	compat.Set(0, 2, 0.3)
	compat.Set(1, 2, 0.2)
	return &Team{Members: members, Compat: compat}
}
