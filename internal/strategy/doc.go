// Package strategy defines the candidate ordering interface and implements
// the available algorithms:
//
//   - First Success: attempt candidates in configured order
//   - Least Cost: cheapest cost class first
//   - Lowest Latency: lowest estimated latency first, where the estimate is
//     derived from circuit breaker metrics and penalized by failure rate
//
// Strategies only see healthy candidates; filtering by breaker state happens
// in the router before ordering.
package strategy
