package permission

// Module is a named functional area that permissions are scoped to.
type Module string

const (
	ModuleEmployees   Module = "employees"
	ModuleAttendance  Module = "attendance"
	ModuleSalaries    Module = "salaries"
	ModuleVehicles    Module = "vehicles"
	ModuleDocuments   Module = "documents"
	ModuleDepartments Module = "departments"
	ModuleReports     Module = "reports"
	ModuleDevices     Module = "devices"
	ModuleSettings    Module = "settings"
)

// Catalog lists every module in the fixed catalog, in display order.
var Catalog = []Module{
	ModuleEmployees,
	ModuleAttendance,
	ModuleSalaries,
	ModuleVehicles,
	ModuleDocuments,
	ModuleDepartments,
	ModuleReports,
	ModuleDevices,
	ModuleSettings,
}

var catalogSet = func() map[Module]struct{} {
	s := make(map[Module]struct{}, len(Catalog))
	for _, m := range Catalog {
		s[m] = struct{}{}
	}
	return s
}()

// ValidModule reports whether m is part of the catalog.
func ValidModule(m Module) bool {
	_, ok := catalogSet[m]
	return ok
}
