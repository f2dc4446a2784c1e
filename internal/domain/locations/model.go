package locations

// Location is a building/room/locker triple chemicals are stored at.
type Location struct {
	ID            int64
	BuildingName  string
	LabRoomNumber int
	LockerNumber  int
}
