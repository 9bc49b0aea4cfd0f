package domain

// Display maps the closed status/type enums to presentation descriptors.
// Every variant must have an entry; display_test.go walks the All* slices so
// an enum added without a mapping fails the build's test stage.

type Display struct {
	Label string
	Emoji string
}

var AllTaskTypes = []TaskType{
	TaskTypeWatchVideo, TaskTypeClickAd, TaskTypeSurvey, TaskTypeSocialMedia, TaskTypeOther,
}

var taskTypeDisplay = map[TaskType]Display{
	TaskTypeWatchVideo:  {Label: "Watch Video", Emoji: "🎬"},
	TaskTypeClickAd:     {Label: "Click Ad", Emoji: "🖱"},
	TaskTypeSurvey:      {Label: "Survey", Emoji: "📝"},
	TaskTypeSocialMedia: {Label: "Social Media", Emoji: "📣"},
	TaskTypeOther:       {Label: "Other", Emoji: "📌"},
}

func (t TaskType) Display() Display {
	if d, ok := taskTypeDisplay[t]; ok {
		return d
	}
	return taskTypeDisplay[TaskTypeOther]
}

var AllTxStatuses = []TxStatus{
	TxStatusPending, TxStatusCompleted, TxStatusFailed, TxStatusCancelled,
}

var txStatusDisplay = map[TxStatus]Display{
	TxStatusPending:   {Label: "Pending", Emoji: "⏳"},
	TxStatusCompleted: {Label: "Completed", Emoji: "✅"},
	TxStatusFailed:    {Label: "Failed", Emoji: "❌"},
	TxStatusCancelled: {Label: "Cancelled", Emoji: "🚫"},
}

func (s TxStatus) Display() Display {
	if d, ok := txStatusDisplay[s]; ok {
		return d
	}
	return Display{Label: string(s)}
}

var AllTxTypes = []TxType{
	TxTypeTaskReward, TxTypeReferralBonus, TxTypePackagePurchase, TxTypeWithdrawal,
}

var txTypeDisplay = map[TxType]Display{
	TxTypeTaskReward:      {Label: "Task Reward", Emoji: "💰"},
	TxTypeReferralBonus:   {Label: "Referral Bonus", Emoji: "👥"},
	TxTypePackagePurchase: {Label: "Package Purchase", Emoji: "📦"},
	TxTypeWithdrawal:      {Label: "Withdrawal", Emoji: "🏦"},
}

func (t TxType) Display() Display {
	if d, ok := txTypeDisplay[t]; ok {
		return d
	}
	return Display{Label: string(t)}
}

var AllWithdrawalStatuses = []WithdrawalStatus{
	WithdrawalPending, WithdrawalProcessing, WithdrawalCompleted, WithdrawalRejected,
}

var withdrawalStatusDisplay = map[WithdrawalStatus]Display{
	WithdrawalPending:    {Label: "Pending", Emoji: "⏳"},
	WithdrawalProcessing: {Label: "Processing", Emoji: "🔄"},
	WithdrawalCompleted:  {Label: "Completed", Emoji: "✅"},
	WithdrawalRejected:   {Label: "Rejected", Emoji: "❌"},
}

func (s WithdrawalStatus) Display() Display {
	if d, ok := withdrawalStatusDisplay[s]; ok {
		return d
	}
	return Display{Label: string(s)}
}

var AllWithdrawalMethods = []WithdrawalMethod{
	MethodNayaPay, MethodJazzCash, MethodEasypaisa, MethodRaast, MethodZindigi,
}

var withdrawalMethodDisplay = map[WithdrawalMethod]Display{
	MethodNayaPay:   {Label: "NayaPay", Emoji: "💜"},
	MethodJazzCash:  {Label: "JazzCash", Emoji: "❤️"},
	MethodEasypaisa: {Label: "Easypaisa", Emoji: "💚"},
	MethodRaast:     {Label: "Raast ID", Emoji: "🏛"},
	MethodZindigi:   {Label: "Zindigi App", Emoji: "🧡"},
}

func (m WithdrawalMethod) Display() Display {
	if d, ok := withdrawalMethodDisplay[m]; ok {
		return d
	}
	return Display{Label: string(m)}
}

var AllPackageStatuses = []PackageStatus{
	PackageStatusNone, PackageStatusPending, PackageStatusActive, PackageStatusExpired,
}

var packageStatusDisplay = map[PackageStatus]Display{
	PackageStatusNone:    {Label: "None", Emoji: "➖"},
	PackageStatusPending: {Label: "Pending", Emoji: "⏳"},
	PackageStatusActive:  {Label: "Active", Emoji: "✅"},
	PackageStatusExpired: {Label: "Expired", Emoji: "⌛"},
}

func (s PackageStatus) Display() Display {
	if d, ok := packageStatusDisplay[s]; ok {
		return d
	}
	return Display{Label: string(s)}
}
