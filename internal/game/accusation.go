package game

// Check compares an accusation to the solution. Names must match exactly.
func (s Solution) Check(suspect, weapon, room string) bool {
	return s.Suspect.Name == suspect && s.Weapon.Name == weapon && s.Room.Name == room
}
