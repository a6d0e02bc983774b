// Package ratelimit — IP bazlı sliding-window rate limiter.
//
// Login brute-force denemelerine karşı ilk savunma hattı. Şifre sıfırlama
// endpoint'inde de kullanılır — oradaki asıl koruma kullanıcı başına DB
// kontrolüdür, bu katman sadece IP başına istek selini keser.
//
// Neden in-memory?
// Her denemeyi SQLite'a yazmak gereksiz I/O ve contention yaratır;
// tek instance deploy'da Redis bağımlılığına gerek yok. Instance yeniden
// başlarsa sayaçlar sıfırlanır — kabul edilebilir bir taviz.
//
// pkg/ratelimit hiçbir proje içi pakete bağımlı değildir (leaf dependency) —
// handlers ↔ middleware arasında import cycle oluşturmaz.
package ratelimit

import (
	"net"
	"net/http"
	"sync"
	"time"
)

// bucket, bir IP için istek sayacı ve pencere başlangıcı tutar.
// Pencere dolduğunda sayaç sıfırlanıp yeni pencere başlar.
type bucket struct {
	count       int
	windowStart time.Time
}

// IPRateLimiter, IP başına sliding-window istek limiti uygular.
//
// Kullanım:
//
//	limiter := ratelimit.NewIPRateLimiter(5, 2*time.Minute)
//	if !limiter.Allow(ip) { /* 429 + Retry-After */ }
//	// başarılı login'de: limiter.Reset(ip)
type IPRateLimiter struct {
	mu          sync.RWMutex
	buckets     map[string]*bucket
	maxAttempts int
	window      time.Duration
	stopCleanup chan struct{}
}

// NewIPRateLimiter, yeni limiter oluşturur ve arka plan temizleme
// goroutine'ini başlatır. Temizleme her dakika çalışır, süresi dolmuş
// bucket'ları siler — uzun ömürlü sunucularda bellek sızıntısını önler.
func NewIPRateLimiter(maxAttempts int, window time.Duration) *IPRateLimiter {
	rl := &IPRateLimiter{
		buckets:     make(map[string]*bucket),
		maxAttempts: maxAttempts,
		window:      window,
		stopCleanup: make(chan struct{}),
	}

	go rl.cleanupLoop()

	return rl
}

// Allow, verilen IP'nin istek yapmasına izin verilip verilmediğini döner.
// Her çağrı sayacı artırır — istek başarılı olsun veya olmasın.
func (rl *IPRateLimiter) Allow(ip string) bool {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, exists := rl.buckets[ip]
	if !exists {
		rl.buckets[ip] = &bucket{count: 1, windowStart: now}
		return true
	}

	if now.Sub(b.windowStart) > rl.window {
		b.count = 1
		b.windowStart = now
		return true
	}

	b.count++
	return b.count <= rl.maxAttempts
}

// Reset, IP sayacını sıfırlar. Başarılı login sonrası çağrılır —
// doğru şifreyi giren meşru kullanıcı sonraki oturumunda bloke olmaz.
func (rl *IPRateLimiter) Reset(ip string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	delete(rl.buckets, ip)
}

// RetryAfterSeconds, limit aşıldığında kalan bekleme süresini saniye
// cinsinden döner — HTTP Retry-After header değeri olarak kullanılır.
func (rl *IPRateLimiter) RetryAfterSeconds(ip string) int {
	rl.mu.RLock()
	defer rl.mu.RUnlock()

	b, exists := rl.buckets[ip]
	if !exists {
		return 0
	}

	remaining := rl.window - time.Since(b.windowStart)
	if remaining < 0 {
		return 0
	}
	return int(remaining.Seconds()) + 1 // +1 yuvarlama — client tam süreyi beklesin
}

// Close, temizleme goroutine'ini durdurur.
func (rl *IPRateLimiter) Close() {
	close(rl.stopCleanup)
}

func (rl *IPRateLimiter) cleanupLoop() {
	ticker := time.NewTicker(60 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stopCleanup:
			return
		}
	}
}

func (rl *IPRateLimiter) cleanup() {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for ip, b := range rl.buckets {
		if now.Sub(b.windowStart) > rl.window {
			delete(rl.buckets, ip)
		}
	}
}

// ExtractIP, HTTP request'ten client IP adresini çıkarır.
//
// Öncelik: X-Forwarded-For (ilk IP) > X-Real-IP > RemoteAddr.
// Production'da uygulama reverse proxy arkasındadır — RemoteAddr
// her zaman proxy'nin IP'sidir, gerçek client header'lardadır.
func ExtractIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		for i := 0; i < len(xff); i++ {
			if xff[i] == ',' {
				return xff[:i]
			}
		}
		return xff
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
