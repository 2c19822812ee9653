package ledger

import (
	"fmt"

	"github.com/matti7866/api-sub001/app/models"
)

// stepDef is one billable sub-stage of a residence workflow. Costs are
// recorded in the reference currency directly on the residence row as
// a <prefix>_cost / <prefix>_date / <prefix>_account_id /
// <prefix>_supplier_id column group.
type stepDef struct {
	Label  string
	Prefix string
}

var residenceSteps = []stepDef{
	{"Offer Letter", "offer_letter"},
	{"Insurance", "insurance"},
	{"Labor Card", "labor_card"},
	{"Visa Stamping", "visa_stamping"},
	{"Medical", "medical"},
	{"Emirates ID", "emirates_id"},
	{"Change Status", "change_status"},
	{"E-Visa", "evisa"},
}

var dependentSteps = []stepDef{
	{"Insurance", "insurance"},
	{"Visa Stamping", "visa_stamping"},
	{"Medical", "medical"},
	{"Emirates ID", "emirates_id"},
	{"E-Visa", "evisa"},
}

// stepSources generates one source descriptor per residence and
// dependent step. Only account-billed steps surface: supplier-billed
// step costs are a supplier liability, not a house-account movement,
// so the account column is required non-null.
func stepSources() []sourceSpec {
	specs := make([]sourceSpec, 0, len(residenceSteps)+len(dependentSteps))

	for _, st := range residenceSteps {
		specs = append(specs, sourceSpec{
			Name:            "residence_" + st.Prefix,
			Kind:            "Residence " + st.Label + " Cost",
			Table:           "residences",
			DateColumn:      st.Prefix + "_date",
			AccountColumn:   st.Prefix + "_account_id",
			AmountColumn:    st.Prefix + "_cost",
			RemarksColumn:   "remarks",
			ReferenceColumn: "customer_id",
			DescColumn:      "employee_name",
			StaffColumn:     "added_by",
			Category:        models.CategoryDebit,
			ExtraWhere:      stepWhere(st.Prefix),
		})
	}

	for _, st := range dependentSteps {
		specs = append(specs, sourceSpec{
			Name:            "dependent_" + st.Prefix,
			Kind:            "Dependent " + st.Label + " Cost",
			Table:           "dependents",
			DateColumn:      st.Prefix + "_date",
			AccountColumn:   st.Prefix + "_account_id",
			AmountColumn:    st.Prefix + "_cost",
			RemarksColumn:   "remarks",
			ReferenceColumn: "residence_id",
			DescColumn:      "dependent_name",
			StaffColumn:     "added_by",
			Category:        models.CategoryDebit,
			ExtraWhere:      stepWhere(st.Prefix),
		})
	}

	return specs
}

func stepWhere(prefix string) string {
	return fmt.Sprintf("s.%s_cost > 0 AND s.%s_date IS NOT NULL AND s.%s_account_id IS NOT NULL",
		prefix, prefix, prefix)
}
