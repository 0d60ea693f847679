package hypo_test

import (
	"testing"

	"github.com/samber/do/v2"
	"go.uber.org/dig"

	"github.com/cwm/hypo"
)

// Benchmark service types
type benchLogger struct{ Name string }
type benchConfig struct{ Value string }
type benchDep5 struct{ Value int }

type benchDatabase struct {
	Logger *benchLogger
	Config *benchConfig
}

type benchCache struct {
	Logger   *benchLogger
	Config   *benchConfig
	Database *benchDatabase
}

type benchUserService struct {
	Logger   *benchLogger
	Config   *benchConfig
	Database *benchDatabase
	Cache    *benchCache
	Dep5     *benchDep5
}

func newBenchLogger() *benchLogger { return &benchLogger{Name: "logger"} }
func newBenchConfig() *benchConfig { return &benchConfig{Value: "config"} }
func newBenchDep5() *benchDep5     { return &benchDep5{Value: 5} }

func newBenchDatabase(logger *benchLogger, config *benchConfig) *benchDatabase {
	return &benchDatabase{Logger: logger, Config: config}
}

func newBenchCache(logger *benchLogger, config *benchConfig, db *benchDatabase) *benchCache {
	return &benchCache{Logger: logger, Config: config, Database: db}
}

func newBenchUserService(logger *benchLogger, config *benchConfig, db *benchDatabase, cache *benchCache, dep5 *benchDep5) *benchUserService {
	return &benchUserService{Logger: logger, Config: config, Database: db, Cache: cache, Dep5: dep5}
}

var benchConstructors = []any{
	newBenchLogger,
	newBenchConfig,
	newBenchDatabase,
	newBenchCache,
	newBenchDep5,
	newBenchUserService,
}

// setupBenchContainer registers the full graph with the given lifetime.
func setupBenchContainer(b *testing.B, singleton bool) *hypo.Container {
	b.Helper()

	c := hypo.New()
	for _, ctor := range benchConstructors {
		step, err := c.Register(ctor)
		if err != nil {
			b.Fatal(err)
		}
		if singleton {
			step.AsSingleton()
		}
	}
	return c
}

func setupBenchDig(b *testing.B) *dig.Container {
	b.Helper()

	c := dig.New()
	for _, ctor := range benchConstructors {
		if err := c.Provide(ctor); err != nil {
			b.Fatal(err)
		}
	}
	return c
}

func setupBenchDo(transient bool) do.Injector {
	injector := do.New()

	if transient {
		do.ProvideTransient(injector, func(i do.Injector) (*benchLogger, error) { return newBenchLogger(), nil })
		do.ProvideTransient(injector, func(i do.Injector) (*benchConfig, error) { return newBenchConfig(), nil })
	} else {
		do.Provide(injector, func(i do.Injector) (*benchLogger, error) { return newBenchLogger(), nil })
		do.Provide(injector, func(i do.Injector) (*benchConfig, error) { return newBenchConfig(), nil })
	}
	do.Provide(injector, func(i do.Injector) (*benchDatabase, error) {
		logger := do.MustInvoke[*benchLogger](i)
		config := do.MustInvoke[*benchConfig](i)
		return newBenchDatabase(logger, config), nil
	})
	do.Provide(injector, func(i do.Injector) (*benchCache, error) {
		logger := do.MustInvoke[*benchLogger](i)
		config := do.MustInvoke[*benchConfig](i)
		db := do.MustInvoke[*benchDatabase](i)
		return newBenchCache(logger, config, db), nil
	})
	do.Provide(injector, func(i do.Injector) (*benchDep5, error) { return newBenchDep5(), nil })
	do.Provide(injector, func(i do.Injector) (*benchUserService, error) {
		logger := do.MustInvoke[*benchLogger](i)
		config := do.MustInvoke[*benchConfig](i)
		db := do.MustInvoke[*benchDatabase](i)
		cache := do.MustInvoke[*benchCache](i)
		dep5 := do.MustInvoke[*benchDep5](i)
		return newBenchUserService(logger, config, db, cache, dep5), nil
	})

	return injector
}

// =============================================================================
// Registration Benchmarks
// =============================================================================

func BenchmarkRegister_Hypo(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		setupBenchContainer(b, true)
	}
}

func BenchmarkRegister_Dig(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		setupBenchDig(b)
	}
}

func BenchmarkRegister_Do(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		setupBenchDo(false)
	}
}

// =============================================================================
// Simple Resolution Benchmarks
// =============================================================================

func BenchmarkResolve_Simple_Hypo(b *testing.B) {
	c := setupBenchContainer(b, true)

	// Warm up
	hypo.MustResolve[*benchLogger](c)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = hypo.MustResolve[*benchLogger](c)
	}
}

func BenchmarkResolve_Simple_Dig(b *testing.B) {
	c := setupBenchDig(b)

	// Warm up
	c.Invoke(func(l *benchLogger) {})

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		c.Invoke(func(l *benchLogger) {})
	}
}

func BenchmarkResolve_Simple_Do(b *testing.B) {
	injector := setupBenchDo(false)

	// Warm up
	do.MustInvoke[*benchLogger](injector)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = do.MustInvoke[*benchLogger](injector)
	}
}

// =============================================================================
// Complex Resolution Benchmarks (5 Dependencies)
// =============================================================================

func BenchmarkResolve_Complex_Hypo(b *testing.B) {
	c := setupBenchContainer(b, true)

	// Warm up
	hypo.MustResolve[*benchUserService](c)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = hypo.MustResolve[*benchUserService](c)
	}
}

func BenchmarkResolve_Complex_Dig(b *testing.B) {
	c := setupBenchDig(b)

	// Warm up
	c.Invoke(func(u *benchUserService) {})

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		c.Invoke(func(u *benchUserService) {})
	}
}

func BenchmarkResolve_Complex_Do(b *testing.B) {
	injector := setupBenchDo(false)

	// Warm up
	do.MustInvoke[*benchUserService](injector)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = do.MustInvoke[*benchUserService](injector)
	}
}

// =============================================================================
// Transient Resolution Benchmarks
// =============================================================================

func BenchmarkResolve_Transient_Hypo(b *testing.B) {
	c := setupBenchContainer(b, false)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = hypo.MustResolve[*benchLogger](c)
	}
}

func BenchmarkResolve_TransientGraph_Hypo(b *testing.B) {
	c := setupBenchContainer(b, false)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = hypo.MustResolve[*benchUserService](c)
	}
}

func BenchmarkResolve_Transient_Do(b *testing.B) {
	injector := setupBenchDo(true)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = do.MustInvoke[*benchLogger](injector)
	}
}

// =============================================================================
// Concurrent Resolution Benchmarks
// =============================================================================

func BenchmarkResolve_Concurrent_Hypo(b *testing.B) {
	c := setupBenchContainer(b, true)

	// Warm up
	hypo.MustResolve[*benchUserService](c)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_ = hypo.MustResolve[*benchUserService](c)
		}
	})
}

func BenchmarkResolve_Concurrent_Dig(b *testing.B) {
	c := setupBenchDig(b)

	// Warm up
	c.Invoke(func(u *benchUserService) {})

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			c.Invoke(func(u *benchUserService) {})
		}
	})
}

func BenchmarkResolve_Concurrent_Do(b *testing.B) {
	injector := setupBenchDo(false)

	// Warm up
	do.MustInvoke[*benchUserService](injector)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_ = do.MustInvoke[*benchUserService](injector)
		}
	})
}
