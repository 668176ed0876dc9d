package backtest

// concurrent.go — worker pool para las simulaciones independientes del
// análisis multi-origen y del optimizador. Cada celda/origen es una
// simulación pura sin dependencias entre iteraciones, así que se reparten
// entre workers y los resultados se escriben por índice para mantener un
// orden determinista.

import (
	"runtime"
	"sync"
)

// forEachIndexed ejecuta fn(i) para cada i en [0, n) usando un worker pool.
// Cada índice se procesa exactamente una vez; fn debe escribir su resultado
// en la posición i de la estructura que capture. Si workers <= 0 usa
// runtime.NumCPU().
func forEachIndexed(n, workers int, fn func(i int)) {
	if n == 0 {
		return
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > n {
		workers = n
	}

	workCh := make(chan int, n)
	for i := 0; i < n; i++ {
		workCh <- i
	}
	close(workCh)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range workCh {
				fn(i)
			}
		}()
	}
	wg.Wait()
}
