package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Employee struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID      uuid.UUID `gorm:"type:uuid;index;uniqueIndex:uq_employee_number;uniqueIndex:uq_employee_email"`
	EmployeeNumber string    `gorm:"size:32;uniqueIndex:uq_employee_number"`
	FullName       string    `gorm:"size:150;not null"`
	Email          string    `gorm:"size:150;uniqueIndex:uq_employee_email"`
	Phone          string    `gorm:"size:32"`
	PAN            string    `gorm:"column:pan;size:10"`
	Designation    string    `gorm:"size:100"`
	JoinDate       time.Time `gorm:"type:date"`
	IsActive       bool      `gorm:"default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (Employee) TableName() string {
	return "employees"
}
