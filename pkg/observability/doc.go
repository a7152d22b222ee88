/*
Package observability exports engine activity as Prometheus metrics.

Metrics plugs into the engine through domain.LifecycleHooks, so simulations
are measured without the engine knowing about Prometheus:

	m := observability.NewMetrics(prometheus.DefaultRegisterer)
	eng, err := automata.New(automata.WithLifecycleHooks(m.Hooks()))
*/
package observability
