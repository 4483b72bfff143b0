package main

import (
	"fmt"
	"math"
	"sync"

	"github.com/sarchlab/scopetrace/monitoring"
	"github.com/sarchlab/scopetrace/tracing"
)

func printNumbers(count int) {
	defer tracing.StartFunctionScope().Stop()

	for i := 0; i < count; i++ {
		fmt.Printf("Number: %d\n", i)
	}
}

func computeSquareRoots(count int) {
	defer tracing.StartFunctionScope().Stop()

	for i := 0; i < count; i++ {
		fmt.Printf("Sqrt: %f\n", math.Sqrt(float64(i)))
	}
}

func runBenchmarks() {
	defer tracing.StartFunctionScope().Stop()

	fmt.Println("Running benchmarks")

	printNumbers(500)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		computeSquareRoots(500)
	}()

	{
		timer := tracing.StartScope("inner block")
		printNumbers(200)
		timer.Stop()
	}

	wg.Wait()
}

func main() {
	tracing.BeginSession("Profile", "results.json")
	defer tracing.EndSession()

	monitor := monitoring.NewMonitor()
	monitor.RegisterSession(tracing.DefaultSession())
	monitor.StartServer()

	runBenchmarks()
}
