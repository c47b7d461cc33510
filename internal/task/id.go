package task

// NextID derives the id to hand out next: one past the highest id in tasks,
// never below floor (a previously persisted counter), and never below 1.
// Ids of deleted tasks stay retired as long as floor is carried forward.
func NextID(tasks []*Task, floor int) int {
	next := max(floor, 1)
	for _, t := range tasks {
		if t.ID >= next {
			next = t.ID + 1
		}
	}
	return next
}
