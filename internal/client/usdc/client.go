// Package usdc submits ERC-20 USDC transfers over JSON-RPC.
package usdc

import (
	"context"
	"crypto/ecdsa"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"meridian-api/internal/logger"
)

// USDC uses 6 decimal places on every supported network.
const tokenDecimals = 6

const transferABI = `[{"name":"transfer","type":"function","inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]},{"name":"balanceOf","type":"function","stateMutability":"view","inputs":[{"name":"account","type":"address"}],"outputs":[{"name":"","type":"uint256"}]}]`

// Client submits USDC transfers against a single network.
type Client struct {
	eth          *ethclient.Client
	tokenAddress common.Address
	chainID      *big.Int
	logger       *zap.Logger
	abi          abi.ABI
}

// NewClient dials the RPC endpoint and prepares the transfer codec.
func NewClient(rpcURL, tokenAddress string, chainID int64) (*Client, error) {
	eth, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to RPC")
	}
	parsed, err := abi.JSON(strings.NewReader(transferABI))
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse token ABI")
	}
	return &Client{
		eth:          eth,
		tokenAddress: common.HexToAddress(tokenAddress),
		chainID:      big.NewInt(chainID),
		logger:       logger.Log,
		abi:          parsed,
	}, nil
}

// ToTokenUnits converts a decimal USDC amount to its base-unit integer
// representation.
func ToTokenUnits(amount decimal.Decimal) *big.Int {
	return amount.Shift(tokenDecimals).BigInt()
}

// BalanceOf reads the token balance of an address via eth_call.
func (c *Client) BalanceOf(ctx context.Context, address string) (decimal.Decimal, error) {
	calldata, err := c.abi.Pack("balanceOf", common.HexToAddress(address))
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "failed to encode balanceOf call")
	}

	out, err := c.eth.CallContract(ctx, ethereum.CallMsg{
		To:   &c.tokenAddress,
		Data: calldata,
	}, nil)
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "balanceOf call failed")
	}

	results, err := c.abi.Unpack("balanceOf", out)
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "failed to decode balanceOf result")
	}
	raw, ok := results[0].(*big.Int)
	if !ok {
		return decimal.Zero, errors.New("balanceOf returned a non-integer result")
	}
	return decimal.NewFromBigInt(raw, -tokenDecimals), nil
}

// Transfer signs and broadcasts an ERC-20 transfer from the vault key.
// Returns the transaction hash.
func (c *Client) Transfer(ctx context.Context, key *ecdsa.PrivateKey, to string, amount decimal.Decimal) (string, error) {
	from := crypto.PubkeyToAddress(key.PublicKey)

	nonce, err := c.eth.PendingNonceAt(ctx, from)
	if err != nil {
		return "", errors.Wrap(err, "failed to get nonce")
	}

	calldata, err := c.abi.Pack("transfer", common.HexToAddress(to), ToTokenUnits(amount))
	if err != nil {
		return "", errors.Wrap(err, "failed to encode transfer call")
	}

	tipCap, err := c.eth.SuggestGasTipCap(ctx)
	if err != nil {
		return "", errors.Wrap(err, "failed to get gas tip cap")
	}
	head, err := c.eth.HeaderByNumber(ctx, nil)
	if err != nil {
		return "", errors.Wrap(err, "failed to get chain head")
	}
	feeCap := new(big.Int).Add(tipCap, new(big.Int).Mul(head.BaseFee, big.NewInt(2)))

	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   c.chainID,
		Nonce:     nonce,
		GasTipCap: tipCap,
		GasFeeCap: feeCap,
		Gas:       100_000,
		To:        &c.tokenAddress,
		Value:     big.NewInt(0),
		Data:      calldata,
	})

	signed, err := types.SignTx(tx, types.LatestSignerForChainID(c.chainID), key)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign transaction")
	}

	if err := c.eth.SendTransaction(ctx, signed); err != nil {
		return "", errors.Wrap(err, "failed to broadcast transaction")
	}

	c.logger.Info("USDC transfer broadcast",
		zap.String("from", from.Hex()),
		zap.String("to", to),
		zap.String("amount", amount.String()),
		zap.String("tx_hash", signed.Hash().Hex()))

	return signed.Hash().Hex(), nil
}

// Close releases the RPC connection.
func (c *Client) Close() {
	c.eth.Close()
}
