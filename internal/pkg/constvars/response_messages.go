package constvars

const (
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"
	ResponseError   = "error"
)

const (
	// Order-related messages
	CreateOrderSuccessMessage     = "order created successfully"
	GetOrderSuccessMessage        = "order fetched successfully"
	SubmitPaymentSuccessMessage   = "payment submitted successfully"
	AssignCourierSuccessMessage   = "courier assigned successfully"
	MarkDeliveredSuccessMessage   = "order marked as delivered"
	CancelOrderSuccessMessage     = "order cancelled successfully"
	ListCouriersSuccessMessage    = "couriers fetched successfully"

	// Prescription-related messages
	IssuePrescriptionSuccessMessage    = "prescription issued successfully"
	GetPrescriptionSuccessMessage      = "prescription fetched successfully"
	LockPrescriptionSuccessMessage     = "prescription locked successfully"
	DispensePrescriptionSuccessMessage = "prescription dispensed successfully"
	CancelPrescriptionSuccessMessage   = "prescription cancelled successfully"

	// Transaction-related messages
	VerifyTransactionSuccessMessage = "transaction verified successfully"
	GetTransactionSuccessMessage    = "transaction fetched successfully"
)
