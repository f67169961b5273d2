package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func limitedRouter(capacity int64, inflight, peak *int32) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/work", ConcurrencyLimit(capacity), func(c *gin.Context) {
		cur := atomic.AddInt32(inflight, 1)
		for {
			p := atomic.LoadInt32(peak)
			if cur <= p || atomic.CompareAndSwapInt32(peak, p, cur) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		atomic.AddInt32(inflight, -1)
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestConcurrencyLimitSerializes(t *testing.T) {
	var inflight, peak int32
	r := limitedRouter(1, &inflight, &peak)

	const requests = 5
	var wg sync.WaitGroup
	for i := 0; i < requests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodPost, "/work", nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != http.StatusOK {
				t.Errorf("status = %d", w.Code)
			}
		}()
	}
	wg.Wait()

	if got := atomic.LoadInt32(&peak); got != 1 {
		t.Errorf("peak concurrency = %d, want 1", got)
	}
}

func TestConcurrencyLimitAllowsUpToCapacity(t *testing.T) {
	var inflight, peak int32
	r := limitedRouter(3, &inflight, &peak)

	const requests = 6
	var wg sync.WaitGroup
	for i := 0; i < requests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodPost, "/work", nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
		}()
	}
	wg.Wait()

	if got := atomic.LoadInt32(&peak); got > 3 {
		t.Errorf("peak concurrency = %d, want <= 3", got)
	}
}
