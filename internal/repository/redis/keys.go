package redis

import "fmt"

// Key prefix for all theme-park data
const keyPrefix = "themepark"

// rideKey returns the Redis key for a Ride snapshot
func rideKey(id string) string {
	return fmt.Sprintf("%s:ride:%s", keyPrefix, id)
}

// ridesIndexKey returns the Redis key for the SET of all ride ids
func ridesIndexKey() string {
	return fmt.Sprintf("%s:idx:rides", keyPrefix)
}

// employeeKey returns the Redis key for an Employee
func employeeKey(id string) string {
	return fmt.Sprintf("%s:employee:%s", keyPrefix, id)
}

// employeesIndexKey returns the Redis key for the SET of all employee ids
func employeesIndexKey() string {
	return fmt.Sprintf("%s:idx:employees", keyPrefix)
}
