package books

// SeedData returns the demo books used to pre-populate an empty store
func SeedData() []Draft {
	return []Draft{
		{Title: "Go Programming", Author: "John Doe", PublishedYear: 2020},
		{Title: "Web Development with React", Author: "Jane Smith", PublishedYear: 2021},
		{Title: "Clean Code", Author: "Robert C. Martin", PublishedYear: 2008},
	}
}
