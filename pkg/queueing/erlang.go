package queueing

import "math"

// factorial of n, as float64
func factorial(n int) float64 {
	f := 1.0
	for i := 2; i <= n; i++ {
		f *= float64(i)
	}
	return f
}

// ProbEmpty returns P0, the stationary probability that an M/M/m system with
// arrival rate lambda, per-server service rate mu, and m servers is empty:
//
//	P0 = 1 / ( sum_{k=0}^{m-1} (lambda/mu)^k / k!  +  (lambda/mu)^m / m! * (m*mu)/(m*mu - lambda) )
//
// Defined only for m*mu > lambda.
func ProbEmpty(lambda float64, mu float64, m int) float64 {
	a := lambda / mu // offered load
	c := float64(m)
	sum := 0.0
	for k := 0; k < m; k++ {
		sum += math.Pow(a, float64(k)) / factorial(k)
	}
	sum += (math.Pow(a, c) / factorial(m)) * ((c * mu) / (c*mu - lambda))
	return 1.0 / sum
}

// ProbQueueing returns the Erlang C term
//
//	C = 1 - [ m*(lambda/mu)^m / ( m! * (m - lambda/mu) ) ] * P0
//
// used to weight the queueing branch of the response-time distribution.
// Defined only for m*mu > lambda.
func ProbQueueing(lambda float64, mu float64, m int) float64 {
	a := lambda / mu
	c := float64(m)
	num := c * math.Pow(a, c)
	den := factorial(m) * (c - a)
	return 1.0 - (num/den)*ProbEmpty(lambda, mu, m)
}

// ProbAllBusy returns Pm, the stationary probability of exactly m customers
// in the system, expressed in terms of the utilization rho = lambda/(m*mu):
//
//	Pm = [ (m*rho)^m / ( m! * (1-rho) ) ] * pi0
//
// where pi0 is the empty-system probability computed from an independent
// normalization over m*rho. Since m*rho equals the offered load lambda/mu and
// (m*mu)/(m*mu-lambda) equals 1/(1-rho), pi0 coincides with ProbEmpty for all
// stable m; both derivations are kept to mirror their sources.
func ProbAllBusy(lambda float64, mu float64, m int) float64 {
	rho := lambda / (float64(m) * mu)
	a := float64(m) * rho
	head := (math.Pow(a, float64(m)) / factorial(m)) * (1.0 / (1.0 - rho))
	tail := 0.0
	for k := 0; k < m; k++ {
		tail += math.Pow(a, float64(k)) / factorial(k)
	}
	pi0 := 1.0 / (head + tail)
	return (math.Pow(a, float64(m)) / (factorial(m) * (1.0 - rho))) * pi0
}
