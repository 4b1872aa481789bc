package harness

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall scenario success.
	// True if every assertion holds.
	Pass bool `json:"pass"`

	// Errors contains assertion failure messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Query is the compact rendering. Empty when compilation failed.
	Query string `json:"query,omitempty"`

	// PrettyQuery is the pretty rendering. Empty when compilation failed.
	PrettyQuery string `json:"pretty_query,omitempty"`

	// StatementID is the content address of Query.
	StatementID string `json:"statement_id,omitempty"`

	// Checked is false when the statement contains unchecked caller text.
	Checked bool `json:"checked"`

	// Warnings lists the unchecked parts of the statement.
	Warnings []string `json:"warnings,omitempty"`

	// ErrorCode classifies the compilation failure, if any.
	ErrorCode string `json:"error_code,omitempty"`

	// ErrorMessage is the compilation failure message, if any.
	ErrorMessage string `json:"error_message,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:     true,
		Errors:   []string{},
		Warnings: []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Failed reports whether the query failed to compile.
func (r *Result) Failed() bool {
	return r.ErrorCode != ""
}
