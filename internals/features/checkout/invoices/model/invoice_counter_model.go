package model

// InvoiceCounterModel holds one running sequence per day ("invoice-20250422").
type InvoiceCounterModel struct {
	CounterName string `gorm:"column:counter_name;primaryKey" json:"counter_name"`
	CounterSeq  int64  `gorm:"column:counter_seq;not null;default:0" json:"counter_seq"`
}

func (InvoiceCounterModel) TableName() string {
	return "invoice_counters"
}
