package models

// Department groups staff members by organisational unit.
type Department struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// Role names a staff function (admin, teacher, accountant, ...).
type Role struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// Role names recognised by the authorization layer.
const (
	RoleAdmin      = "admin"
	RoleTeacher    = "teacher"
	RoleAccountant = "accountant"
	RoleStaff      = "staff"
	RoleParent     = "parent"
)

// Gender is a reference entity classifying students, staff and parents.
type Gender struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// Emergency is an emergency contact on file for a student.
type Emergency struct {
	ID    int64  `db:"id" json:"id"`
	Name  string `db:"name" json:"name"`
	Phone string `db:"phone" json:"phone"`
}

// MedicalCategory groups medical conditions.
type MedicalCategory struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// MedicalCondition is a named condition under a category.
type MedicalCondition struct {
	ID         int64  `db:"id" json:"id"`
	Name       string `db:"name" json:"name"`
	CategoryID int64  `db:"category_id" json:"category_id"`
}

// MedicalConditionDetail includes the category name for listings.
type MedicalConditionDetail struct {
	MedicalCondition
	CategoryName string `db:"category_name" json:"category_name"`
}
