package summarizer

var sampleDialogues = []SampleDialogue{
	{
		ID:       1,
		Title:    "Doctor Appointment",
		Category: "Healthcare",
		Text: `#Person1#: Hi, Mr. Smith. I'm Doctor Hawkins. Why are you here today?
#Person2#: I found it would be a good idea to get a check-up.
#Person1#: Yes, well, you haven't had one for 5 years. You should have one every year.
#Person2#: I know. I figure as long as there is nothing wrong, why go see the doctor?
#Person1#: Well, the best way to avoid serious illnesses is to find out about them early. So try to come at least once a year for your own good.
#Person2#: Ok.
#Person1#: Let me see here. Your eyes and ears look fine. Take a deep breath, please. Do you smoke, Mr. Smith?`,
	},
	{
		ID:       2,
		Title:    "Job Interview",
		Category: "Employment",
		Text: `#Person1#: Tell me about your previous work experience.
#Person2#: I worked as a software developer at TechCorp for three years. I was responsible for developing web applications.
#Person1#: What technologies did you use?
#Person2#: I primarily used Python, Django, and React. I also worked with Docker and AWS.
#Person1#: Why are you interested in this position?
#Person2#: I'm looking for new challenges and your company's focus on AI aligns with my interests.`,
	},
	{
		ID:       3,
		Title:    "Travel Planning",
		Category: "Travel",
		Text: `#Person1#: Have you decided where we should go for our vacation?
#Person2#: I was thinking about Japan. What do you think?
#Person1#: Japan sounds amazing! When were you thinking of going?
#Person2#: Maybe in the spring to see the cherry blossoms. What's your budget?
#Person1#: I can spend around $3000 for the whole trip.
#Person2#: That should be enough for a 10-day trip if we plan carefully.`,
	},
}

// SampleDialogues returns a copy of the canned example inputs.
func SampleDialogues() []SampleDialogue {
	out := make([]SampleDialogue, len(sampleDialogues))
	copy(out, sampleDialogues)
	return out
}
