package cachekey

const (
	DepartmentsAll         = "departments:all"
	StatisticsTotal        = "employee-statistics:total"
	StatisticsByDepartment = "employee-statistics:by-department"
	IdempotencyPrefix      = "idemp:"

	// Generation is bumped on every employee or department write. Cached
	// values are stored under "<key>:<generation>".
	Generation = "employee-data:generation"
)
