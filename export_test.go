package fakerpc

// QueueLength reports the number of fake responses still pending for path.
func (c *Channel) QueueLength(path string) int {
	q, ok := c.responses.queues[path]
	if !ok {
		return 0
	}
	return q.Length()
}
