package domain

// DialogState represents user's current interaction state
type DialogState string

const (
	StateIdle DialogState = "idle"

	// submission flows
	StateAwaitingAddress  DialogState = "awaiting_address"
	StateAwaitingPassword DialogState = "awaiting_password"
	StateAwaiting2FAKey   DialogState = "awaiting_2fa_key"
	StateAwaiting2FAPhoto DialogState = "awaiting_2fa_photo"

	// transfer flow
	StateAwaitingTransferTarget DialogState = "awaiting_transfer_target"
	StateAwaitingTransferAmount DialogState = "awaiting_transfer_amount"

	// admin flows
	StateAwaitingAdminTarget    DialogState = "awaiting_admin_target"
	StateAwaitingAdminAmount    DialogState = "awaiting_admin_amount"
	StateAwaitingUserInfoTarget DialogState = "awaiting_userinfo_target"
	StateAwaitingBroadcastText  DialogState = "awaiting_broadcast_text"
	StateAwaitingNotifyTarget   DialogState = "awaiting_notify_target"
	StateAwaitingNotifyText     DialogState = "awaiting_notify_text"
	StateAwaitingPriceEdit      DialogState = "awaiting_price_edit"
	StateAwaitingLinkEdit       DialogState = "awaiting_link_edit"
)

// PriceKey names a numeric setting an admin can edit
type PriceKey string

const (
	PriceFresh         PriceKey = "fresh"
	PriceComplete      PriceKey = "complete"
	PriceOld           PriceKey = "old"
	PriceMinWithdrawal PriceKey = "min_withdrawal"
)

// StateData holds temporary data for user's current dialog state.
// Only the fields relevant to the active state are meaningful; starting
// any new flow replaces the whole value.
type StateData struct {
	State DialogState

	// submission scratch
	DraftAddress  string
	DraftPassword string
	OldAccount    bool

	// transfer / admin / notify target
	TargetID int64

	// admin adjustment scratch
	AdminBalance BalanceKind
	AdminRemove  bool

	// price edit scratch
	PriceKey PriceKey
}

// Idle is the zero dialog state
func Idle() *StateData {
	return &StateData{State: StateIdle}
}
