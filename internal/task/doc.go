// Package task holds the task model and the in-memory task list.
//
// # Variants
//
// A Task is one of three kinds:
//
//   - KindTodo: a title only
//   - KindDeadline: a title and a due time
//   - KindEvent: a title, a start and an end time
//
// Every task also carries a completion flag and a set of tags.
//
// # Persistence contract
//
// Manager wraps a Store. Structural changes (Add, RemoveAt) save the whole
// list immediately. In-place changes made through Get (mark, unmark, tag,
// untag) are not saved until the caller invokes Save:
//
//	t, err := m.Get(i)
//	if err != nil {
//		return err
//	}
//	t.SetComplete()
//	return m.Save()
//
// Manager is not safe for concurrent use.
package task
