package models

import (
	"time"

	"github.com/doug-fsg/controlei/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ClientModel is the persistence model for the Client domain entity.
type ClientModel struct {
	TenantModel
	Name     string `gorm:"type:varchar(200);not null"`
	Email    string `gorm:"type:varchar(200)"`
	Phone    string `gorm:"type:varchar(50)"`
	Document string `gorm:"type:varchar(50)"`
	Address  string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ClientModel) TableName() string {
	return "clients"
}

// ToDomain converts the persistence model to a domain Client entity.
func (m *ClientModel) ToDomain() *ledger.Client {
	return &ledger.Client{
		TenantEntity: m.ToDomainTenantEntity(),
		Name:         m.Name,
		Email:        m.Email,
		Phone:        m.Phone,
		Document:     m.Document,
		Address:      m.Address,
	}
}

// FromDomain populates the persistence model from a domain Client entity.
func (m *ClientModel) FromDomain(c *ledger.Client) {
	m.FromDomainTenantEntity(c.TenantEntity)
	m.Name = c.Name
	m.Email = c.Email
	m.Phone = c.Phone
	m.Document = c.Document
	m.Address = c.Address
}

// ClientModelFromDomain creates a new persistence model from a domain Client.
func ClientModelFromDomain(c *ledger.Client) *ClientModel {
	m := &ClientModel{}
	m.FromDomain(c)
	return m
}

// SaleModel is the persistence model for the Sale aggregate. Payments are
// loaded eagerly: a sale without them cannot be classified.
type SaleModel struct {
	TenantModel
	ClientID    *uuid.UUID         `gorm:"type:uuid;index"`
	Description string             `gorm:"type:text"`
	TotalAmount decimal.Decimal    `gorm:"type:decimal(18,2);not null"`
	SaleDate    time.Time          `gorm:"not null;index"`
	Payments    []SalePaymentModel `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (SaleModel) TableName() string {
	return "sales"
}

// ToDomain converts the persistence model to a domain Sale entity.
func (m *SaleModel) ToDomain() *ledger.Sale {
	payments := make([]ledger.SalePayment, len(m.Payments))
	for i := range m.Payments {
		payments[i] = *m.Payments[i].ToDomain()
	}
	return &ledger.Sale{
		TenantEntity: m.ToDomainTenantEntity(),
		ClientID:     m.ClientID,
		Description:  m.Description,
		TotalAmount:  m.TotalAmount,
		SaleDate:     m.SaleDate,
		Payments:     payments,
	}
}

// FromDomain populates the persistence model from a domain Sale entity.
func (m *SaleModel) FromDomain(s *ledger.Sale) {
	m.FromDomainTenantEntity(s.TenantEntity)
	m.ClientID = s.ClientID
	m.Description = s.Description
	m.TotalAmount = s.TotalAmount
	m.SaleDate = s.SaleDate
	m.Payments = make([]SalePaymentModel, len(s.Payments))
	for i := range s.Payments {
		m.Payments[i].FromDomain(&s.Payments[i])
	}
}

// SaleModelFromDomain creates a new persistence model from a domain Sale.
func SaleModelFromDomain(s *ledger.Sale) *SaleModel {
	m := &SaleModel{}
	m.FromDomain(s)
	return m
}

// SalePaymentModel is the persistence model for a sale payment. Only
// PENDING and PAID are ever stored; derived statuses stay in memory.
type SalePaymentModel struct {
	BaseModel
	SaleID            uuid.UUID            `gorm:"type:uuid;not null;index"`
	Type              ledger.PaymentType   `gorm:"type:varchar(20);not null"`
	Amount            decimal.Decimal      `gorm:"type:decimal(18,2);not null"`
	DueDate           time.Time            `gorm:"not null;index"`
	Status            ledger.PaymentStatus `gorm:"type:varchar(20);not null;default:'PENDING'"`
	PaidDate          *time.Time
	InstallmentNumber *int
	TotalInstallments *int
}

// TableName returns the table name for GORM
func (SalePaymentModel) TableName() string {
	return "sale_payments"
}

// ToDomain converts the persistence model to a domain SalePayment.
func (m *SalePaymentModel) ToDomain() *ledger.SalePayment {
	return &ledger.SalePayment{
		BaseEntity:        m.BaseModel.ToDomain(),
		SaleID:            m.SaleID,
		Type:              m.Type,
		Amount:            m.Amount,
		DueDate:           m.DueDate,
		Status:            m.Status,
		PaidDate:          m.PaidDate,
		InstallmentNumber: m.InstallmentNumber,
		TotalInstallments: m.TotalInstallments,
	}
}

// FromDomain populates the persistence model from a domain SalePayment.
func (m *SalePaymentModel) FromDomain(p *ledger.SalePayment) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.SaleID = p.SaleID
	m.Type = p.Type
	m.Amount = p.Amount
	m.DueDate = p.DueDate
	m.Status = p.Status
	m.PaidDate = p.PaidDate
	m.InstallmentNumber = p.InstallmentNumber
	m.TotalInstallments = p.TotalInstallments
}

// SalePaymentModelFromDomain creates a new persistence model from a
// domain SalePayment.
func SalePaymentModelFromDomain(p *ledger.SalePayment) *SalePaymentModel {
	m := &SalePaymentModel{}
	m.FromDomain(p)
	return m
}

// ExpenseCategoryModel is the persistence model for expense categories.
// Names are unique per organization.
type ExpenseCategoryModel struct {
	TenantModel
	Name  string `gorm:"type:varchar(100);not null;uniqueIndex:idx_category_org_name,priority:2"`
	Color string `gorm:"type:varchar(20)"`
}

// TableName returns the table name for GORM
func (ExpenseCategoryModel) TableName() string {
	return "expense_categories"
}

// ToDomain converts the persistence model to a domain ExpenseCategory.
func (m *ExpenseCategoryModel) ToDomain() *ledger.ExpenseCategory {
	return &ledger.ExpenseCategory{
		TenantEntity: m.ToDomainTenantEntity(),
		Name:         m.Name,
		Color:        m.Color,
	}
}

// FromDomain populates the persistence model from a domain ExpenseCategory.
func (m *ExpenseCategoryModel) FromDomain(c *ledger.ExpenseCategory) {
	m.FromDomainTenantEntity(c.TenantEntity)
	m.Name = c.Name
	m.Color = c.Color
}

// ExpenseCategoryModelFromDomain creates a new persistence model from a
// domain ExpenseCategory.
func ExpenseCategoryModelFromDomain(c *ledger.ExpenseCategory) *ExpenseCategoryModel {
	m := &ExpenseCategoryModel{}
	m.FromDomain(c)
	return m
}

// ExpenseModel is the persistence model for the Expense domain entity.
// Recurrence fields are flattened into nullable columns.
type ExpenseModel struct {
	TenantModel
	Description         string               `gorm:"type:text;not null"`
	Amount              decimal.Decimal      `gorm:"type:decimal(18,2);not null"`
	DueDate             time.Time            `gorm:"not null;index"`
	Status              ledger.PaymentStatus `gorm:"type:varchar(20);not null;default:'PENDING'"`
	PaidDate            *time.Time
	CategoryID          *uuid.UUID `gorm:"type:uuid;index"`
	IsRecurring         bool       `gorm:"not null;default:false"`
	RecurrenceFrequency *string    `gorm:"type:varchar(20)"`
	RecurrenceDay       *int
	RecurrenceEndDate   *time.Time
	ParentExpenseID     *uuid.UUID `gorm:"type:uuid;index"`
	Notes               string     `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToDomain converts the persistence model to a domain Expense entity.
func (m *ExpenseModel) ToDomain() *ledger.Expense {
	e := &ledger.Expense{
		TenantEntity:    m.ToDomainTenantEntity(),
		Description:     m.Description,
		Amount:          m.Amount,
		DueDate:         m.DueDate,
		Status:          m.Status,
		PaidDate:        m.PaidDate,
		CategoryID:      m.CategoryID,
		IsRecurring:     m.IsRecurring,
		ParentExpenseID: m.ParentExpenseID,
		Notes:           m.Notes,
	}
	if m.RecurrenceFrequency != nil {
		e.Recurrence = &ledger.Recurrence{
			Frequency:  ledger.RecurrenceFrequency(*m.RecurrenceFrequency),
			DayOfMonth: m.RecurrenceDay,
			EndDate:    m.RecurrenceEndDate,
		}
	}
	return e
}

// FromDomain populates the persistence model from a domain Expense entity.
func (m *ExpenseModel) FromDomain(e *ledger.Expense) {
	m.FromDomainTenantEntity(e.TenantEntity)
	m.Description = e.Description
	m.Amount = e.Amount
	m.DueDate = e.DueDate
	m.Status = e.Status
	m.PaidDate = e.PaidDate
	m.CategoryID = e.CategoryID
	m.IsRecurring = e.IsRecurring
	m.ParentExpenseID = e.ParentExpenseID
	m.Notes = e.Notes
	if e.Recurrence != nil {
		freq := string(e.Recurrence.Frequency)
		m.RecurrenceFrequency = &freq
		m.RecurrenceDay = e.Recurrence.DayOfMonth
		m.RecurrenceEndDate = e.Recurrence.EndDate
	} else {
		m.RecurrenceFrequency = nil
		m.RecurrenceDay = nil
		m.RecurrenceEndDate = nil
	}
}

// ExpenseModelFromDomain creates a new persistence model from a domain
// Expense.
func ExpenseModelFromDomain(e *ledger.Expense) *ExpenseModel {
	m := &ExpenseModel{}
	m.FromDomain(e)
	return m
}

// RecurringExpensePaymentModel is the persistence model for monthly
// payment records of recurring expenses. The (expense, payment month)
// pair is unique; the database enforces the dedup under concurrency.
type RecurringExpensePaymentModel struct {
	TenantModel
	ExpenseID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_recurring_payment_expense_month,priority:1"`
	PaymentDate time.Time       `gorm:"not null;uniqueIndex:idx_recurring_payment_expense_month,priority:2"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Notes       string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (RecurringExpensePaymentModel) TableName() string {
	return "recurring_expense_payments"
}

// ToDomain converts the persistence model to a domain record.
func (m *RecurringExpensePaymentModel) ToDomain() *ledger.RecurringExpensePayment {
	return &ledger.RecurringExpensePayment{
		TenantEntity: m.ToDomainTenantEntity(),
		ExpenseID:    m.ExpenseID,
		PaymentDate:  m.PaymentDate,
		Amount:       m.Amount,
		Notes:        m.Notes,
	}
}

// FromDomain populates the persistence model from a domain record.
func (m *RecurringExpensePaymentModel) FromDomain(p *ledger.RecurringExpensePayment) {
	m.FromDomainTenantEntity(p.TenantEntity)
	m.ExpenseID = p.ExpenseID
	m.PaymentDate = p.PaymentDate
	m.Amount = p.Amount
	m.Notes = p.Notes
}

// RecurringExpensePaymentModelFromDomain creates a new persistence model
// from a domain record.
func RecurringExpensePaymentModelFromDomain(p *ledger.RecurringExpensePayment) *RecurringExpensePaymentModel {
	m := &RecurringExpensePaymentModel{}
	m.FromDomain(p)
	return m
}
