package domain

// GroupByStatus partitions tasks into one bucket per status, preserving the
// input order inside each bucket. Every status key is present even when its
// bucket is empty so the board renders a column for it.
func GroupByStatus(tasks []Task) map[Status][]Task {
	grouped := make(map[Status][]Task, len(Statuses))
	for _, s := range Statuses {
		grouped[s] = []Task{}
	}
	for _, t := range tasks {
		grouped[t.Status] = append(grouped[t.Status], t)
	}
	return grouped
}
