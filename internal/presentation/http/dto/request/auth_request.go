package request

// LoginRequest is the terminal login payload, forwarded to the upstream
// API verbatim.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SelectBranchRequest switches the session's active branch.
type SelectBranchRequest struct {
	BranchID   int64  `json:"branch_id" binding:"required"`
	BranchName string `json:"branch_name"`
}
