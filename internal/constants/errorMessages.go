package constants

const (
	MsgAircraftNotFound       = "Aircraft not found"
	MsgFxRateNotFound         = "Exchange rate not found"
	MsgMonthlyHoursZero       = "Monthly hours must be greater than 0"
	MsgLegTimeMissing         = "Leg time must be provided or aircraft must have avg_leg_time configured"
	MsgInvalidLegTime         = "Leg time must be a finite number"
	MsgRouteNotFound          = "Route not found"
	MsgFlightNotFound         = "Flight not found"
	MsgFixedCostNotFound      = "Fixed cost not found"
	MsgVariableCostNotFound   = "Variable cost not found"
	MsgUserNotFound           = "User not found"
	MsgFlightAlreadyCompleted = "Flight is already completed"
	MsgFlightCannotRevert     = "Completed flight cannot be moved back to planned"
	MsgRegistrationTaken      = "Registration already in use"
	MsgEmailTaken             = "Email already in use"
	MsgInvalidCredentials     = "Invalid email or password"
	MsgUserInactive           = "User is inactive"
	MsgMissingToken           = "Missing or malformed Authorization header"
	MsgInvalidToken           = "Invalid or expired token"
	MsgAdminRequired          = "Admin privileges required"
	MsgForbidden              = "Not allowed to access this resource"
	MsgValidationFailed       = "Validation failed"
	MsgInvalidBody            = "Invalid request body"
	MsgInternalError          = "Internal server error"
	MsgRateLimited            = "Rate limit exceeded"
	MsgInvalidQueryParam      = "Invalid query parameter"
	MsgRouteIDRequired        = "routeId query parameter is required"
	MsgCannotDeleteSelf       = "Admins cannot delete their own account"
	MsgRoleChangeAdminOnly    = "Only admins can change roles or activation"
)
