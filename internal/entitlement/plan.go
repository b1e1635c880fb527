package entitlement

// Plan is a subscription tier. Limits derive from the plan through a fixed
// lookup; nothing else sets them except per-company overrides.
type Plan string

const (
	PlanBasic      Plan = "basic"
	PlanPremium    Plan = "premium"
	PlanEnterprise Plan = "enterprise"
)

// Limits are the usage ceilings a plan grants. A ceiling of zero disables
// the resource entirely.
type Limits struct {
	MaxUsers       int      `json:"max_users"`
	MaxEmployees   int      `json:"max_employees"`
	MaxVehicles    int      `json:"max_vehicles"`
	MaxDepartments int      `json:"max_departments"`
	Features       []string `json:"features"`
}

var planTable = map[Plan]Limits{
	PlanBasic: {
		MaxUsers:       5,
		MaxEmployees:   50,
		MaxVehicles:    20,
		MaxDepartments: 5,
		Features:       []string{"employees", "attendance", "documents", "departments"},
	},
	PlanPremium: {
		MaxUsers:       20,
		MaxEmployees:   250,
		MaxVehicles:    100,
		MaxDepartments: 20,
		Features:       []string{"employees", "attendance", "salaries", "vehicles", "documents", "departments", "reports"},
	},
	PlanEnterprise: {
		MaxUsers:       100,
		MaxEmployees:   2000,
		MaxVehicles:    1000,
		MaxDepartments: 100,
		Features:       []string{"employees", "attendance", "salaries", "vehicles", "documents", "departments", "reports", "devices", "settings"},
	},
}

// LimitsFor returns the fixed limits of a plan. Unknown plans get the basic
// tier, matching how a corrupted row should degrade rather than grant more.
func LimitsFor(p Plan) Limits {
	if l, ok := planTable[p]; ok {
		return l
	}
	return planTable[PlanBasic]
}

// ValidPlan reports whether p is a known tier.
func ValidPlan(p Plan) bool {
	_, ok := planTable[p]
	return ok
}

// HasFeature reports whether a plan includes a named feature area.
func (l Limits) HasFeature(name string) bool {
	for _, f := range l.Features {
		if f == name {
			return true
		}
	}
	return false
}
