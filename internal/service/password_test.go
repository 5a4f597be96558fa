package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"cashflow/internal/store"
	"cashflow/internal/worker"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func restoreGlobals() {
	bcryptGenerateFromPassword = bcrypt.GenerateFromPassword
	bcryptCompareHashAndPassword = bcrypt.CompareHashAndPassword
	timeNow = time.Now
	parseWithClaims = jwt.ParseWithClaims
	newTokenID = uuid.NewString
	getCashFlowByID = store.GetCashFlowByID
	sumEntriesReceived = store.SumEntriesReceived
	sumExpenses = store.SumExpenses
}

// 測試用較低 cost 以加快速度
func useMinCost() {
	bcryptGenerateFromPassword = func(pw []byte, _ int) ([]byte, error) {
		return bcrypt.GenerateFromPassword(pw, bcrypt.MinCost)
	}
}

func TestHashPassword(t *testing.T) {
	t.Cleanup(restoreGlobals)
	useMinCost()

	hash, err := HashPassword("secret")
	require.NoError(t, err)
	require.NotEqual(t, "secret", hash)
	require.NoError(t, ComparePassword(hash, "secret"))
	require.ErrorIs(t, ComparePassword(hash, "other"), ErrPasswordMismatch)

	bcryptGenerateFromPassword = func([]byte, int) ([]byte, error) { return nil, errors.New("gen") }
	_, err = HashPassword("secret")
	require.Error(t, err)
}

func TestHashPasswordUsesDefaultCost(t *testing.T) {
	t.Cleanup(restoreGlobals)
	var gotCost int
	bcryptGenerateFromPassword = func(pw []byte, cost int) ([]byte, error) {
		gotCost = cost
		return []byte("h"), nil
	}
	_, err := HashPassword("pw")
	require.NoError(t, err)
	require.Equal(t, 10, gotCost)
}

func TestPasswords(t *testing.T) {
	t.Cleanup(restoreGlobals)
	useMinCost()
	pool := worker.NewPool(1)
	t.Cleanup(pool.Stop)
	p := NewPasswords(pool)
	ctx := context.Background()

	hash, err := p.Hash(ctx, "pw123456")
	require.NoError(t, err)
	require.NoError(t, p.Compare(ctx, hash, "pw123456"))
	require.ErrorIs(t, p.Compare(ctx, hash, "nope"), ErrPasswordMismatch)
}

func TestPasswordsBoundedConcurrency(t *testing.T) {
	t.Cleanup(restoreGlobals)
	var running, peak int32
	bcryptCompareHashAndPassword = func([]byte, []byte) error {
		n := atomic.AddInt32(&running, 1)
		for {
			old := atomic.LoadInt32(&peak)
			if n <= old || atomic.CompareAndSwapInt32(&peak, old, n) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		atomic.AddInt32(&running, -1)
		return nil
	}
	pool := worker.NewPool(2)
	t.Cleanup(pool.Stop)
	p := NewPasswords(pool)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, p.Compare(context.Background(), "h", "pw"))
		}()
	}
	wg.Wait()
	require.LessOrEqual(t, atomic.LoadInt32(&peak), int32(2))
}

func TestPasswordsCanceledContext(t *testing.T) {
	t.Cleanup(restoreGlobals)
	var called atomic.Bool
	bcryptCompareHashAndPassword = func([]byte, []byte) error { called.Store(true); return nil }
	pool := worker.NewPool(1)
	t.Cleanup(pool.Stop)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := NewPasswords(pool).Compare(ctx, "h", "pw")
	require.ErrorIs(t, err, context.Canceled)

	// Stop 之後不應有殘留的送出動作
	pool.Stop()
	require.False(t, called.Load())
}

func TestPasswordsCanceledWhileQueued(t *testing.T) {
	t.Cleanup(restoreGlobals)
	release := make(chan struct{})
	var calls atomic.Int32
	bcryptCompareHashAndPassword = func([]byte, []byte) error {
		if calls.Add(1) == 1 {
			<-release
		}
		return nil
	}
	pool := worker.NewPool(1)
	p := NewPasswords(pool)

	busy := make(chan error, 1)
	go func() { busy <- p.Compare(context.Background(), "h", "pw") }()
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, p.Compare(ctx, "h", "pw"), context.DeadlineExceeded)

	close(release)
	require.NoError(t, <-busy)
	pool.Stop()
	require.Equal(t, int32(1), calls.Load())
}

func TestPasswordsStoppedPool(t *testing.T) {
	pool := worker.NewPool(1)
	pool.Stop()
	_, err := NewPasswords(pool).Hash(context.Background(), "pw")
	require.ErrorIs(t, err, worker.ErrStopped)
}
