// Прометей-метрики блочных команд.
package blockdoc

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

var commandCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: "blockdoc",
	Name:      "commands_total",
	Help:      "Executed block commands by name and outcome",
}, []string{"command", "applied"})

func registerMetrics() error {
	return prometheus.Register(commandCounter)
}

func countCommand(command string, applied bool) {
	commandCounter.WithLabelValues(command, strconv.FormatBool(applied)).Inc()
}
