/*
Package calc prices resource usage. Every step of the computation is
checked for overflow and an operation that can't be priced returns
ErrOverflow instead of a wrapped-around fee.
*/
package calc

import (
	"errors"

	"github.com/jankotek/hedera-services-sub001/pkg/fee"
	"github.com/jankotek/hedera-services-sub001/pkg/util/bigmath"
)

// ErrOverflow is returned when a fee calculation step overflows, the
// operation can't be priced and therefore can't be performed.
var ErrOverflow = errors.New("fee calculation overflow")

// Usage is a provider-scoped view of the resources used by an operation.
type Usage interface {
	UniversalBpt() int64
	NetworkVpt() int64
	NetworkRbh() int64
	NodeBpr() int64
	NodeSbpr() int64
	NodeVpt() int64
	ServiceRbh() int64
	ServiceSbh() int64
}

// Fees returns the node, network and service fees in tinybars for the given
// usage, resource prices (in 1/1000 of tinycent), exchange rate and
// congestion multiplier.
func Fees(usage Usage, prices fee.Data, rate fee.ExchangeRate, multiplier int64) (fee.Object, error) {
	networkTc, err := networkFeeInTinycents(usage, prices.Network)
	if err != nil {
		return fee.Object{}, err
	}
	nodeTc, err := nodeFeeInTinycents(usage, prices.Node)
	if err != nil {
		return fee.Object{}, err
	}
	serviceTc, err := serviceFeeInTinycents(usage, prices.Service)
	if err != nil {
		return fee.Object{}, err
	}

	var res fee.Object
	for _, p := range []struct {
		tinycents int64
		dst       *int64
	}{
		{networkTc, &res.NetworkFee},
		{nodeTc, &res.NodeFee},
		{serviceTc, &res.ServiceFee},
	} {
		tb, err := TinycentsToTinybars(p.tinycents, rate)
		if err != nil {
			return fee.Object{}, err
		}
		if bigmath.MulOverflows(tb, multiplier) {
			return fee.Object{}, ErrOverflow
		}
		*p.dst = tb * multiplier
		if *p.dst < 0 {
			return fee.Object{}, ErrOverflow
		}
	}
	return res, nil
}

// TinycentsToTinybars converts the amount using the rate. The exact result
// is computed even if amount*HbarEquiv doesn't fit into int64.
func TinycentsToTinybars(amount int64, rate fee.ExchangeRate) (int64, error) {
	hbar, cent := int64(rate.HbarEquiv), int64(rate.CentEquiv)
	if cent == 0 {
		return 0, ErrOverflow
	}
	if !bigmath.MulOverflows(amount, hbar) {
		return amount * hbar / cent, nil
	}
	res, err := bigmath.MulDiv(amount, hbar, cent)
	if err != nil {
		return 0, ErrOverflow
	}
	return res, nil
}

// SafeAccumulate returns base plus all the addends. It fails as soon as any
// operand or any partial sum is negative.
func SafeAccumulate(base int64, addends ...int64) (int64, error) {
	if base < 0 {
		return 0, ErrOverflow
	}
	for _, a := range addends {
		if a < 0 {
			return 0, ErrOverflow
		}
	}
	for _, a := range addends {
		base += a
		if base < 0 {
			return 0, ErrOverflow
		}
	}
	return base, nil
}

func networkFeeInTinycents(usage Usage, prices fee.Components) (int64, error) {
	return nominalFee(prices,
		usage.UniversalBpt(), prices.Bpt,
		usage.NetworkVpt(), prices.Vpt,
		usage.NetworkRbh(), prices.Rbh)
}

func nodeFeeInTinycents(usage Usage, prices fee.Components) (int64, error) {
	return nominalFee(prices,
		usage.UniversalBpt(), prices.Bpt,
		usage.NodeBpr(), prices.Bpr,
		usage.NodeSbpr(), prices.Sbpr,
		usage.NodeVpt(), prices.Vpt)
}

func serviceFeeInTinycents(usage Usage, prices fee.Components) (int64, error) {
	return nominalFee(prices,
		usage.ServiceRbh(), prices.Rbh,
		usage.ServiceSbh(), prices.Sbh)
}

// nominalFee sums the constant price with usage/price pairs and constrains
// the result to the price bounds.
func nominalFee(prices fee.Components, pairs ...int64) (int64, error) {
	terms := make([]int64, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		if bigmath.MulOverflows(pairs[i], pairs[i+1]) {
			return 0, ErrOverflow
		}
		terms = append(terms, pairs[i]*pairs[i+1])
	}
	nominal, err := SafeAccumulate(prices.Constant, terms...)
	if err != nil {
		return 0, err
	}
	return constrainedTinycentFee(nominal, prices.Min, prices.Max), nil
}

// constrainedTinycentFee clamps the nominal price (in 1/1000 of tinycent)
// and converts it into tinycents.
func constrainedTinycentFee(nominal, lo, hi int64) int64 {
	if nominal < lo {
		nominal = lo
	} else if nominal > hi {
		nominal = hi
	}
	return fee.NonDegenerateDiv(nominal, fee.FeeDivisorFactor)
}
