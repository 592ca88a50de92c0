/*
Package settlement processes crypto transfers: it prices them, charges
their fees and applies the implied balance changes to the state.
*/
package settlement

import (
	"errors"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru"
	"github.com/jankotek/hedera-services-sub001/pkg/config"
	"github.com/jankotek/hedera-services-sub001/pkg/core/dao"
	"github.com/jankotek/hedera-services-sub001/pkg/core/storage"
	"github.com/jankotek/hedera-services-sub001/pkg/fee"
	"github.com/jankotek/hedera-services-sub001/pkg/fee/calc"
	"github.com/jankotek/hedera-services-sub001/pkg/fee/charging"
	"github.com/jankotek/hedera-services-sub001/pkg/fee/usage"
	"github.com/jankotek/hedera-services-sub001/pkg/ledger"
	"github.com/jankotek/hedera-services-sub001/pkg/ledger/customfee"
	"github.com/jankotek/hedera-services-sub001/pkg/ledger/marshal"
	"github.com/jankotek/hedera-services-sub001/pkg/ledger/status"
	"go.uber.org/zap"
)

// version is the version of the DB schema.
const version = "0.1.0"

// prefetchCacheSize is the number of prefetched implied transfers kept
// until their transactions are processed.
const prefetchCacheSize = 1024

// ErrUnknownNode is returned for transactions submitted by a node missing
// from the configuration.
var ErrUnknownNode = errors.New("unknown submitting node")

// Processor settles transactions one at a time against the state kept in
// the DB. Processed changes are kept in memory until Persist is called.
type Processor struct {
	lock sync.Mutex

	log        *zap.Logger
	cfg        config.ProtocolConfiguration
	dao        *dao.Simple
	schedules  *customfee.CachedSchedules
	marshal    *marshal.Marshal
	exemptions charging.ExemptAccounts
	acc        usage.Accumulator

	// recent maps the IDs of recently handled transactions to the node that
	// submitted them first.
	recent *lru.Cache
	// prefetched keeps implied transfers computed ahead of processing.
	prefetched *lru.Cache
}

// New creates a Processor over the given store. An empty store is seeded with
// the genesis state from the configuration.
func New(cfg config.ProtocolConfiguration, appCfg config.ApplicationConfiguration, store storage.Store, log *zap.Logger) (*Processor, error) {
	if log == nil {
		return nil, errors.New("empty logger")
	}
	exempt := cfg.FeeExemptAccounts
	if len(exempt) == 0 {
		exempt = charging.DefaultExemptAccounts
	}
	d := dao.NewSimple(store)
	p := &Processor{
		log:        log,
		cfg:        cfg,
		dao:        d,
		schedules:  customfee.NewCachedSchedules(d, appCfg.FeeScheduleCacheSize),
		exemptions: charging.NewExemptAccounts(exempt...),
	}
	p.marshal = marshal.New(cfg.TransferProps(), p.schedules)

	var err error
	p.recent, err = lru.New(appCfg.RecentTxnCacheSize)
	if err != nil {
		return nil, fmt.Errorf("recent transactions cache: %w", err)
	}
	p.prefetched, _ = lru.New(prefetchCacheSize) // Never errors for positive size.

	if err := p.init(); err != nil {
		return nil, err
	}
	return p, nil
}

// init seeds an empty DB with the genesis state or checks the version of an
// existing one.
func (p *Processor) init() error {
	if !p.dao.IsEmpty() {
		ver, err := p.dao.GetVersion()
		if err != nil {
			return fmt.Errorf("can't read DB version: %w", err)
		}
		if ver != version {
			return fmt.Errorf("storage version mismatch (expected=%s, actual=%s)", version, ver)
		}
		p.log.Info("restoring settlement state", zap.String("version", ver))
		return nil
	}
	p.log.Info("no storage version found, initializing from genesis",
		zap.Int("accounts", len(p.cfg.Genesis.Accounts)),
		zap.Int("tokens", len(p.cfg.Genesis.Tokens)))
	if err := seedGenesis(p.dao, p.cfg.Genesis); err != nil {
		return fmt.Errorf("genesis: %w", err)
	}
	p.dao.PutVersion(version)
	_, err := p.Persist()
	return err
}

// Prefetch computes implied transfers of the transaction ahead of its
// processing. They're reused by Process if props and schedules don't change
// in between.
func (p *Processor) Prefetch(tx *Transaction) error {
	p.lock.Lock()
	defer p.lock.Unlock()
	it, err := p.marshal.Unmarshal(tx.Transfer, tx.Payer())
	if err != nil {
		return err
	}
	p.prefetched.Add(tx.ID, it)
	return nil
}

// Process settles the transaction submitted by the given node. Business
// outcomes are reported via the receipt status, an error is only returned
// if the transaction can't be handled at all.
func (p *Processor) Process(tx *Transaction, submittingNode uint32) (*Receipt, error) {
	p.lock.Lock()
	defer p.lock.Unlock()

	nodeAccount, ok := p.cfg.AccountOf(submittingNode)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownNode, submittingNode)
	}
	it, err := p.impliedTransfers(tx)
	if err != nil {
		return nil, err
	}
	receipt := &Receipt{ID: tx.ID}
	fees, err := p.fees(tx, it)
	if err != nil {
		if !errors.Is(err, calc.ErrOverflow) {
			return nil, err
		}
		p.log.Debug("can't price transaction", zap.Stringer("txn", tx.ID), zap.Error(err))
		receipt.Status = status.FailFee
		updateReceiptMetrics(receipt)
		return receipt, nil
	}
	receipt.Fees = fees

	txDAO := p.dao.GetWrapped()
	fc := charging.NewNarratedCharging(txDAO, txDAO, p.exemptions, &p.cfg, p.cfg.FundingAccount)
	fc.ResetForTxn(tx, submittingNode)
	policy := charging.NewPolicy(fc)

	receipt.Status, err = p.chargeFees(txDAO, policy, tx, fees, nodeAccount, submittingNode)
	if err != nil {
		return nil, fmt.Errorf("charging %s: %w", tx.ID, err)
	}
	receipt.Charged = fc.ChargedFees()

	if receipt.Status == status.Success {
		receipt.Status, err = p.execute(txDAO, it)
		if err != nil {
			return nil, fmt.Errorf("applying %s: %w", tx.ID, err)
		}
		if receipt.Status == status.Success {
			receipt.AssessedFees = it.AssessedFees
		}
	}
	if _, err := txDAO.Persist(); err != nil {
		return nil, err
	}
	p.log.Debug("transaction processed",
		zap.Stringer("txn", tx.ID),
		zap.Uint32("node", submittingNode),
		zap.Stringer("status", receipt.Status),
		zap.Int64("charged", fc.TotalFeesChargedToPayer()))
	updateReceiptMetrics(receipt)
	return receipt, nil
}

// chargeFees performs node due diligence and duplicate checks and charges
// fees accordingly. The transaction may only be executed if it returns
// status.Success.
func (p *Processor) chargeFees(d *dao.Simple, policy *charging.Policy, tx *Transaction, fees fee.Object,
	nodeAccount ledger.AccountID, submittingNode uint32) (status.Code, error) {
	if tx.Node != nodeAccount {
		return status.InvalidNodeAccount, policy.ApplyForIgnoredDueDiligence(fees)
	}
	ok, err := d.HasAccount(tx.Payer())
	if err != nil {
		return 0, err
	}
	if !ok {
		return status.PayerAccountNotFound, policy.ApplyForIgnoredDueDiligence(fees)
	}
	if v, ok := p.recent.Get(tx.ID); ok {
		if v.(uint32) == submittingNode {
			return status.DuplicateTransaction, policy.ApplyForIgnoredDueDiligence(fees)
		}
		return policy.ApplyForDuplicate(fees)
	}
	code, err := policy.Apply(fees)
	if err == nil {
		p.recent.Add(tx.ID, submittingNode)
	}
	return code, err
}

// impliedTransfers returns prefetched implied transfers of the transaction
// if they're still valid and computes them otherwise.
func (p *Processor) impliedTransfers(tx *Transaction) (marshal.ImpliedTransfers, error) {
	if v, ok := p.prefetched.Get(tx.ID); ok {
		p.prefetched.Remove(tx.ID)
		return p.marshal.Rationalize(v.(marshal.ImpliedTransfers), tx.Transfer, tx.Payer())
	}
	return p.marshal.Unmarshal(tx.Transfer, tx.Payer())
}

// fees estimates the usage of the transaction and prices it.
func (p *Processor) fees(tx *Transaction, it marshal.ImpliedTransfers) (fee.Object, error) {
	xfer := tx.Transfer
	usage.CryptoTransferUsage(tx.sigUsage(), usage.CryptoTransferMeta{
		TokenMultiplier:        p.cfg.TokenTransferUsageMultiplier,
		NumTokensInvolved:      len(xfer.TokenTransfers),
		NumFungibleTransfers:   ledger.NumFungibleTransfers(xfer.TokenTransfers),
		NumNftOwnershipChanges: ledger.NumOwnershipChanges(xfer.TokenTransfers),
		NumAssessedCustomFees:  len(it.AssessedFees),
	}, tx.baseMeta(), &p.acc)
	return calc.Fees(&p.acc, p.cfg.FeeSchedule, p.cfg.ExchangeRate, p.cfg.CongestionMultiplier)
}

// Persist flushes processed changes to the underlying DB.
func (p *Processor) Persist() (int, error) {
	n, err := p.dao.Persist()
	if err != nil {
		return 0, err
	}
	updatePersistedKeysMetric(n)
	p.log.Debug("persist completed", zap.Int("keys", n))
	return n, nil
}

// Balance returns the native coin balance of the account.
func (p *Processor) Balance(id ledger.AccountID) (int64, error) {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.dao.Balance(id)
}

// TokenBalances returns all token balances of the account.
func (p *Processor) TokenBalances(id ledger.AccountID) (map[ledger.TokenID]int64, error) {
	p.lock.Lock()
	defer p.lock.Unlock()
	res := make(map[ledger.TokenID]int64)
	err := p.dao.ForEachTokenBalance(id, func(tok ledger.TokenID, b int64) bool {
		res[tok] = b
		return true
	})
	return res, err
}

// OwnerOf returns the owner of the NFT.
func (p *Processor) OwnerOf(tok ledger.TokenID, serial int64) (ledger.AccountID, error) {
	p.lock.Lock()
	defer p.lock.Unlock()
	nft, err := p.dao.GetNFT(tok, serial)
	if err != nil {
		return ledger.AccountID{}, err
	}
	return nft.Owner, nil
}
