package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"time"

	qsched "github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub004"
	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub004/anneal"
	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub004/archive"
	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub004/schedule"
)

func main() {
	const (
		numResidents = 8
		numBlocks    = 28 // two weeks of 12-hour shifts
	)

	residents := make([]schedule.Resident, numResidents)
	for i := range residents {
		residents[i] = schedule.Resident{
			ID:           fmt.Sprintf("resident-%02d", i),
			Credentialed: i%2 == 0,
		}
	}

	blocks := make([]schedule.Block, numBlocks)
	for i := range blocks {
		day := (i / 2) % 7
		blocks[i] = schedule.Block{ID: i, Weekend: day >= 5}
	}

	templates := []schedule.RoleTemplate{
		{ID: "day"},
		{ID: "supervisor", RequiresCredential: true},
	}

	unavailable := map[string][]int{
		"resident-00": {0, 1, 2, 3},
		"resident-03": {14, 15},
	}

	sc, err := schedule.NewContext(residents, blocks, templates, unavailable)
	if err != nil {
		log.Fatal(err)
	}
	sc.ID = "demo-fortnight"

	store := archive.NewMemoryStore()

	s, err := qsched.New(
		qsched.WithLogger(qsched.NewTextLogger(slog.LevelDebug)),
		qsched.WithAnnealingParams(anneal.Params{Seed: 4711}),
		qsched.WithTimeout(30*time.Second),
		qsched.WithArchive(store),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer s.Close()

	start := time.Now()
	res, err := s.Solve(context.Background(), sc)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("--- Solve ---")
	fmt.Println("Status:", res.Status)
	fmt.Println("Backend:", res.Backend)
	fmt.Println("Assignments:", len(res.Assignments))
	fmt.Println("Objective:", res.Objective)
	fmt.Println("Feasible:", res.Feasibility.Feasible)
	fmt.Println("Variables:", res.Stats.Variables)
	fmt.Println("Reads:", res.Stats.Reads, "Sweeps:", res.Stats.Sweeps)
	fmt.Println("Elapsed:", time.Since(start))

	load := map[string]int{}
	for _, a := range res.Assignments {
		load[a.Resident]++
	}
	fmt.Println("--- Workload ---")
	for _, r := range residents {
		fmt.Printf("%s: %d blocks\n", r.ID, load[r.ID])
	}
}
