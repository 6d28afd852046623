package main

import (
	"fmt"

	"github.com/smartroom/gohvac/agent/rulebased"
	"github.com/smartroom/gohvac/environment/envconfig"
	"github.com/smartroom/gohvac/experiment"
	"github.com/smartroom/gohvac/experiment/tracker"
)

func main() {
	var seed uint64 = 192382

	// One simulated day per episode at 15-minute steps, for four
	// simulated weeks
	envConf := envconfig.NewConfig(envconfig.SmartRoom, envconfig.Comfort,
		envconfig.Hot, 96, 1.0)

	agentConf := rulebased.NewConfig()
	agentConf.Escalate = true

	conf := experiment.Config{
		Type:        experiment.OnlineExp,
		MaxSteps:    96 * 28,
		EnvConfig:   envConf,
		AgentConfig: agentConf,
	}

	returns := tracker.NewReturn("./returns.bin")
	lengths := tracker.NewEpisodeLength("./lengths.bin")
	exp := conf.CreateExp(seed, []tracker.Tracker{returns, lengths})

	exp.Run()
	exp.Save()

	data := tracker.LoadFloats("./returns.bin")
	var total float64
	for _, r := range data {
		total += r
	}

	fmt.Printf("\nEpisodes finished: %v\n", len(data))
	fmt.Printf("Mean episodic return: %.4f\n", total/float64(len(data)))
}
