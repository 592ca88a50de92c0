/*
Package fee contains resource price schedules, exchange rates and the
fee split produced from them, together with the size constants every usage
estimate is based on.
*/
package fee

// Sizes of the basic entities, in bytes.
const (
	IntSize               = 4
	LongSize              = 8
	BasicEntityIDSize     = 24
	BasicAccountAmtSize   = BasicEntityIDSize + LongSize
	BasicTxIDSize         = BasicEntityIDSize + LongSize
	ExchangeRateSize      = 2*IntSize + LongSize
	BasicReceiptSize      = IntSize + 2*ExchangeRateSize
	TxHashSize            = 48
	BasicTxBodySize       = BasicEntityIDSize + BasicTxIDSize + 2*LongSize
	BasicTxRecordSize     = BasicReceiptSize + TxHashSize + LongSize + BasicTxIDSize + LongSize
	NftTransferSize       = 2*BasicEntityIDSize + LongSize
	AssessedCustomFeeSize = 2*BasicEntityIDSize + LongSize
)

const (
	// ReceiptStorageTimeSec is the number of seconds a receipt is kept.
	ReceiptStorageTimeSec = 180
	// HrsDivisor converts byte-seconds into byte-hours.
	HrsDivisor = 3600
	// FeeDivisorFactor converts tinycent-millis into tinycents.
	FeeDivisorFactor = 1000
)

// Components is a price schedule of a single resource provider. All prices
// are in 1/1000 of tinycent.
type Components struct {
	Min      int64 `yaml:"Min" json:"min"`
	Max      int64 `yaml:"Max" json:"max"`
	Constant int64 `yaml:"Constant" json:"constant"`
	Bpt      int64 `yaml:"Bpt" json:"bpt"`
	Vpt      int64 `yaml:"Vpt" json:"vpt"`
	Rbh      int64 `yaml:"Rbh" json:"rbh"`
	Sbh      int64 `yaml:"Sbh" json:"sbh"`
	Gas      int64 `yaml:"Gas" json:"gas"`
	Bpr      int64 `yaml:"Bpr" json:"bpr"`
	Sbpr     int64 `yaml:"Sbpr" json:"sbpr"`
}

// Data is a full price schedule for one kind of operation.
type Data struct {
	Network Components `yaml:"Network" json:"network"`
	Node    Components `yaml:"Node" json:"node"`
	Service Components `yaml:"Service" json:"service"`
}

// ExchangeRate defines how many tinybars are worth CentEquiv tinycents
// (HbarEquiv hbars per CentEquiv cents).
type ExchangeRate struct {
	HbarEquiv int32 `yaml:"HbarEquiv" json:"hbarEquiv"`
	CentEquiv int32 `yaml:"CentEquiv" json:"centEquiv"`
}

// Object is a computed fee split in tinybars.
type Object struct {
	NodeFee    int64 `json:"nodeFee"`
	NetworkFee int64 `json:"networkFee"`
	ServiceFee int64 `json:"serviceFee"`
}

// Total returns the sum of all three fees. The caller guarantees the
// components were produced by an overflow-checked computation.
func (o Object) Total() int64 {
	return o.NodeFee + o.NetworkFee + o.ServiceFee
}

// NonDegenerateDiv divides dividend by divisor rounding down, but never
// returns 0 for a non-zero dividend. Division by zero yields 0.
func NonDegenerateDiv(dividend, divisor int64) int64 {
	if dividend == 0 || divisor == 0 {
		return 0
	}
	q := dividend / divisor
	if q < 1 {
		return 1
	}
	return q
}
