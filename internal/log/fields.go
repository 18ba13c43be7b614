package log

import "time"

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldOperation  = "operation"
	FieldError      = "error"
	FieldSource     = "source"
	FieldAccountID  = "account_id"
	FieldYear       = "year"
	FieldMonth      = "month"
	FieldRecords    = "records"
	FieldCategories = "categories"
	FieldOverBudget = "over_budget_months"
	FieldDuration   = "duration_ms"
	FieldExchange   = "exchange"
	FieldRoutingKey = "routing_key"
	FieldMessageID  = "message_id"
	FieldAttempt    = "attempt"
	FieldPath       = "path"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentCharts  = "charts"
	ComponentSource  = "source"
	ComponentSQLite  = "sqlite"
	ComponentSheets  = "sheets"
	ComponentAMQP    = "amqp"
	ComponentRender  = "render"
	ComponentPublish = "publisher"
)

// Operations defines standard operation names
const (
	OpLoad      = "load"
	OpAggregate = "aggregate"
	OpCompare   = "compare"
	OpBuild     = "build"
	OpRender    = "render"
	OpPublish   = "publish"
	OpShutdown  = "shutdown"
	OpStartup   = "startup"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithComponent adds component field
func (f LogFields) WithComponent(component string) LogFields {
	f[FieldComponent] = component
	return f
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithPeriod adds the account and period a chart bundle covers
func (f LogFields) WithPeriod(accountID string, year, month int) LogFields {
	f[FieldAccountID] = accountID
	f[FieldYear] = year
	f[FieldMonth] = month
	return f
}

// WithTotals adds aggregation result sizes
func (f LogFields) WithTotals(records, categories, overBudget int) LogFields {
	f[FieldRecords] = records
	f[FieldCategories] = categories
	f[FieldOverBudget] = overBudget
	return f
}

// WithSource adds the data source name
func (f LogFields) WithSource(name string) LogFields {
	f[FieldSource] = name
	return f
}

// WithPath adds a file path
func (f LogFields) WithPath(path string) LogFields {
	f[FieldPath] = path
	return f
}

// WithDuration adds elapsed time in milliseconds
func (f LogFields) WithDuration(d time.Duration) LogFields {
	f[FieldDuration] = d.Milliseconds()
	return f
}

// WithMessage adds where a broker message went
func (f LogFields) WithMessage(exchange, routingKey, messageID string) LogFields {
	f[FieldExchange] = exchange
	f[FieldRoutingKey] = routingKey
	f[FieldMessageID] = messageID
	return f
}

// WithAttempt adds a retry attempt number
func (f LogFields) WithAttempt(n int) LogFields {
	f[FieldAttempt] = n
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
